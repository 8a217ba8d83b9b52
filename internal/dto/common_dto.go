package dto

// ErrorResponse is the error envelope for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type HealthData struct {
	Status      string  `json:"status"`
	Uptime      float64 `json:"uptime"`
	Timestamp   string  `json:"timestamp"`
	Environment string  `json:"environment"`
	Version     string  `json:"version"`
	DB          string  `json:"db"`
}
