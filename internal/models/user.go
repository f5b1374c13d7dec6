package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleUser   Role = "user"
)

// ActorRole tags who performed an action on an appointment. Unlike Role it
// includes "system" for automated entries.
type ActorRole string

const (
	ActorAdmin  ActorRole = "admin"
	ActorDoctor ActorRole = "doctor"
	ActorUser   ActorRole = "user"
	ActorSystem ActorRole = "system"
)

// User represents an account in the system.
type User struct {
	BaseModel
	Name        string     `gorm:"size:120;not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role        Role       `gorm:"size:20;default:'user'" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens      []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	OwnAppointments    []Appointment  `gorm:"foreignKey:UserID" json:"-"`
	Notifications      []Notification `gorm:"foreignKey:RecipientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email address. Email uniqueness is
// global across roles, so every write path must go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
