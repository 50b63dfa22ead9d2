package domain

import "time"

// Role distinguishes ordinary users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user may access admin-only endpoints.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
