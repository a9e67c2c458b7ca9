package ports

import (
	"context"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// AuthService performs the credential check and issues tokens.
type AuthService interface {
	// Login checks (email, password) against admins first, then active
	// collectors. On success it returns a signed JWT plus the role-tagged
	// session view; every failure collapses into ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)

	// EnsureDefaultAdmin seeds the configured admin account when the
	// admins collection is empty.
	EnsureDefaultAdmin(ctx context.Context, name, email, password string) error
}
