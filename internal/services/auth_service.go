package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// AdminLogin authenticates a password-based admin account and issues a
// signed HS256 token.
func (s *AuthService) AdminLogin(req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ? AND role = ?", req.Email, models.RoleAdmin).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AdminLoginResponse{
		Token: token,
		User:  mapUserToResponse(&user),
	}, nil
}

// SyncUser upserts a customer account from a verified identity token.
// The identity provider's subject id is the stable key; profile fields
// from the request body override the token's.
func (s *AuthService) SyncUser(claims *IdentityClaims, req *dto.SyncUserRequest) (*models.User, error) {
	if claims.Sub == "" || claims.Email == "" {
		return nil, errors.New("missing uid or email in identity token")
	}

	name := claims.Name
	if req != nil && req.DisplayName != "" {
		name = req.DisplayName
	}
	avatar := claims.Picture
	if req != nil && req.PhotoURL != "" {
		avatar = req.PhotoURL
	}

	now := time.Now()

	var user models.User
	err := s.db.Where("firebase_uid = ?", claims.Sub).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"email":         claims.Email,
			"last_login_at": now,
		}
		if name != "" {
			updates["name"] = name
		}
		if avatar != "" {
			updates["avatar_url"] = avatar
		}
		if claims.PhoneNumber != "" {
			updates["phone_number"] = claims.PhoneNumber
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to sync user: %w", err)
		}
		return &user, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		uid := claims.Sub
		user = models.User{
			FirebaseUID: &uid,
			Email:       claims.Email,
			Name:        name,
			PhoneNumber: claims.PhoneNumber,
			AvatarURL:   avatar,
			Role:        models.RoleCustomer,
			LastLoginAt: &now,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil

	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
}

// CurrentUser resolves the account behind a verified identity token.
func (s *AuthService) CurrentUser(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func mapUserToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
	}
}
