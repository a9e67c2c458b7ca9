package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleCollector = "collector"
)

// ErrInvalidCredentials covers every login failure cause (unknown email,
// wrong password, inactive collector). The causes are deliberately not
// distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrForbidden = errors.New("access forbidden")

// ErrInvalidID marks a malformed record identifier before any query runs.
var ErrInvalidID = errors.New("invalid id")

// AdminUser is a back-office account with portfolio-wide visibility.
type AdminUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the role-tagged view returned on a successful login.
// It is derived from the matched record, never stored server-side; the
// JWT carries the same identity through subsequent requests.
type Session struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	CollectorID string `json:"collector_id,omitempty"`
}
