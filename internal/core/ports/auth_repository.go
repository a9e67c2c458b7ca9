package ports

import (
	"context"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// AuthRepository defines the persistence operations behind the credential
// check: admins and collectors live in separate collections.
type AuthRepository interface {
	FindAdminByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, admin *domain.AdminUser) (*domain.AdminUser, error)
}
