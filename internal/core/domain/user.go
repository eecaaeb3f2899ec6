package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrEmailRequired = errors.New("email address is required")
var ErrEmailTaken = errors.New("email address already registered")
var ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrTooManyLoginAttempts = errors.New("too many failed login attempts")

// User models a registered account. Email is the login identifier and is
// unique across the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// String identifies the user in logs and diagnostics by email, not by ID.
func (u *User) String() string {
	return u.Email
}

// NormalizeEmail lower-cases the domain part of an email address while
// preserving the local part exactly as submitted. Local parts are
// case-sensitive per RFC 5321, so "Test2@Example.com" becomes
// "Test2@example.com".
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, nil
	}
	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}
