package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := models.User{
		Email:        email,
		Name:         "Store Admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func TestAdminLoginIssuesToken(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	admin := seedAdmin(t, db, "admin@example.com", "s3cret")

	resp, err := svc.AdminLogin(&dto.AdminLoginRequest{Email: "admin@example.com", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, admin.ID, resp.User.ID)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, admin.ID.String(), claims["sub"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTExpiry), exp.Time, 5*time.Second)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	seedAdmin(t, db, "admin@example.com", "s3cret")

	_, err := svc.AdminLogin(&dto.AdminLoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AdminLogin(&dto.AdminLoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginRejectsCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	customer := models.User{Email: "shopper@example.com", PasswordHash: string(hash), Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	_, err = svc.AdminLogin(&dto.AdminLoginRequest{Email: "shopper@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSyncUserCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	claims := &IdentityClaims{
		Sub:   "firebase-uid-1",
		Email: "shopper@example.com",
		Name:  "Shopper",
	}

	created, err := svc.SyncUser(claims, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, created.Role)
	assert.Equal(t, "Shopper", created.Name)
	require.NotNil(t, created.LastLoginAt)

	// Second sync updates the same row instead of creating another.
	claims.Name = "Renamed Shopper"
	updated, err := svc.SyncUser(claims, &dto.SyncUserRequest{PhotoURL: "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
	assert.Equal(t, "Renamed Shopper", reloaded.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", reloaded.AvatarURL)
}

func TestCurrentUserUnknownIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.CurrentUser("no-such-uid")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
