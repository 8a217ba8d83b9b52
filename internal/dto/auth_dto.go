package dto

import "github.com/google/uuid"

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SyncUserRequest carries optional profile overrides from the client;
// the authoritative identity comes from the verified bearer token.
type SyncUserRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Role        string    `json:"role"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"role"`
}
