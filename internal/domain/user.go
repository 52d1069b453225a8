package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role names an account's privilege level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account that can sign in to the dashboard.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a regular account.
func NewUser(username, passwordHash string) User {
	return User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    time.Now(),
	}
}

// WithRole returns a copy of the user with the given role
func (u User) WithRole(role Role) User {
	u.Role = role
	return u
}

// IsAdmin reports whether the user may manage accounts and files.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UploaderRole names the role of uploader as found in users. Accounts that no
// longer exist are labelled "deleted".
func UploaderRole(users map[string]User, uploader string) string {
	if u, ok := users[uploader]; ok {
		return string(u.Role)
	}
	return "deleted"
}

// ParseRole maps stored role names, defaulting to RoleUser.
func ParseRole(raw string) Role {
	if Role(strings.ToLower(strings.TrimSpace(raw))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
