package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a single account table for both customers and admins. Customers
// come in through the identity provider (FirebaseUID set, no password);
// admin accounts use email/password and carry a bcrypt hash.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirebaseUID  *string        `gorm:"size:128;uniqueIndex" json:"firebase_uid,omitempty"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string         `gorm:"size:255" json:"name"`
	PhoneNumber  string         `gorm:"size:20" json:"phone_number,omitempty"`
	AvatarURL    string         `gorm:"size:500" json:"avatar_url,omitempty"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	Role         string         `gorm:"size:20;not null;default:'customer'" json:"role"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
