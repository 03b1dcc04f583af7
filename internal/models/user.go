package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"   json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"   json:"email"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	Role         string    `gorm:"not null"               json:"role"`
	CreatedAt    time.Time `                              json:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RefreshToken stores the sha256 of an issued refresh token, never the token itself.
type RefreshToken struct {
	ID        string `gorm:"type:uuid;primaryKey"  json:"id"`
	UserID    string `gorm:"index;not null"        json:"user_id"`
	Token     string `gorm:"uniqueIndex;not null"  json:"-"`
	JTI       string `gorm:"uniqueIndex;not null"  json:"jti"`
	ExpiresAt int64  `gorm:"not null"              json:"expires_at"`
	Revoked   bool   `gorm:"not null;default:false" json:"revoked"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
