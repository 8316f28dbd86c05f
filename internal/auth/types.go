package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthenticated means there is no valid session.
var ErrUnauthenticated = errors.New("not logged in")

// ErrNotConfigured means no identity service URL is set.
var ErrNotConfigured = errors.New("no identity service configured")

// Credentials are what the user types at the login prompt.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User identifies the logged-in account.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is the whoami response.
type Profile struct {
	User User `json:"user"`
}

// Service is the identity service the CLI commands depend on.
type Service interface {
	Login(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) (*Profile, error)
}

// Error is a failed call to the identity service.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }
