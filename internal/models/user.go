// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the enumerated capability level of a user account.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents an account on the BMX Hive platform.
// Role is the single source of truth for capability checks; the admin
// boolean exposed over the API is derived from it, never stored.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      UserRole       `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	Banned    bool           `gorm:"not null;default:false" json:"banned"`
	Name      string         `json:"name"`
	Bio       string         `json:"bio"`
	Points    int            `gorm:"not null;default:0" json:"points"`
	AvatarURL string         `json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Tricks  []Trick  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"tricks,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is the normalized per-request identity attached by the auth
// middleware. Ban and role state come from a live database read, not from
// token claims.
type Identity struct {
	ID     uint     `json:"id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Admin  bool     `json:"is_admin"`
	Banned bool     `json:"banned"`
}
