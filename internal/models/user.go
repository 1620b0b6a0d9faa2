package models

import "time"

// Roles a user can hold. Admin bypasses ownership checks everywhere.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Name         string `gorm:"size:64"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:16;not null;default:user"` // user / admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
