package ports

import (
	"context"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// CreateCollectorInput carries the fields accepted when registering a
// collector. The password is hashed by the service before it is stored.
type CreateCollectorInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Cedula   string
	Zone     string
}

// UpdateCollectorInput is a partial field merge. A non-nil Password is
// re-hashed before storage.
type UpdateCollectorInput struct {
	Name     *string
	Phone    *string
	Email    *string
	Password *string
	Cedula   *string
	Zone     *string
	Status   *string
}

// CollectorRepository defines persistence operations for collectors.
type CollectorRepository interface {
	Create(ctx context.Context, c *domain.Collector) (*domain.Collector, error)
	FindByID(ctx context.Context, id string) (*domain.Collector, error)
	FindByEmail(ctx context.Context, email string) (*domain.Collector, error)
	List(ctx context.Context) ([]*domain.Collector, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Collector, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

// CollectorService defines use-case operations for collectors. All of
// them are admin-only; the handlers enforce that through RBAC.
type CollectorService interface {
	Create(ctx context.Context, input CreateCollectorInput) (*domain.Collector, error)
	Get(ctx context.Context, id string) (*domain.Collector, error)
	List(ctx context.Context) ([]*domain.Collector, error)
	Update(ctx context.Context, id string, input UpdateCollectorInput) (*domain.Collector, error)
	// Delete removes a collector; it fails with ErrCollectorHasClients
	// while any client still references the collector.
	Delete(ctx context.Context, id string) error
}
