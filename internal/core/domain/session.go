package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoSession = errors.New("no session token provided")
var ErrInvalidSession = errors.New("invalid session")
var ErrForbidden = errors.New("access forbidden")

// Session is an authenticated session record. Role and DisplayName are
// snapshots taken at login time; they are not re-synchronized if the user
// record changes later. Sessions never expire on their own — they live until
// explicit logout or deletion of the owning user.
type Session struct {
	Token       string    `json:"-"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	DisplayName string    `json:"name"`
	LoginTime   time.Time `json:"login_time"`
}
