package ports

import (
	"context"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// Actor identifies who is performing an operation. Services use it to
// scope collector access to their own records; admins see everything.
type Actor struct {
	Role        string
	CollectorID string // empty for admins
}

// CreateClientInput carries the fields accepted when registering a client.
type CreateClientInput struct {
	Name        string
	Phone       string
	Address     string
	Cedula      string
	Email       string
	CollectorID string
}

// UpdateClientInput carries a partial field merge; nil pointers leave the
// stored value untouched.
type UpdateClientInput struct {
	Name        *string
	Phone       *string
	Address     *string
	Cedula      *string
	Email       *string
	CollectorID *string
	Status      *string
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns clients, optionally filtered by collector.
	List(ctx context.Context, collectorID string) ([]*domain.Client, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	// CountByCollector backs the collector delete guard.
	CountByCollector(ctx context.Context, collectorID string) (int64, error)
	// CountActive counts active clients, optionally scoped to a collector.
	CountActive(ctx context.Context, collectorID string) (int64, error)
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	Create(ctx context.Context, actor Actor, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Client, error)
	List(ctx context.Context, actor Actor, collectorID string) ([]*domain.Client, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
