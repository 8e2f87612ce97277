package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ProtectedUsername is the reserved account that can never be deleted.
const ProtectedUsername = "admin"

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUsername = errors.New("username already exists")
var ErrProtectedUser = errors.New("user is protected")
var ErrMissingFields = errors.New("missing required fields")

// User models an account in the system. The username is the primary key;
// there is exactly one record per username.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DisplayName  string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the known access tiers.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
