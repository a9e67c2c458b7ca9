package ports

import (
	"context"
	"time"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// CreateVisitInput carries the fields accepted when scheduling a visit.
type CreateVisitInput struct {
	ClientID      string
	CollectorID   string
	LoanID        string
	ScheduledDate time.Time
	Notes         string
}

// UpdateVisitInput is a partial field merge used for rescheduling and for
// the pending → completed|missed transitions.
type UpdateVisitInput struct {
	ScheduledDate *time.Time
	Status        *string
	Notes         *string
}

// VisitRepository defines persistence operations for visits.
type VisitRepository interface {
	Create(ctx context.Context, v *domain.Visit) (*domain.Visit, error)
	FindByID(ctx context.Context, id string) (*domain.Visit, error)
	List(ctx context.Context, collectorID string) ([]*domain.Visit, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Visit, error)
	Delete(ctx context.Context, id string) error
}

// VisitService defines use-case operations for visits.
type VisitService interface {
	Create(ctx context.Context, actor Actor, input CreateVisitInput) (*domain.Visit, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Visit, error)
	List(ctx context.Context, actor Actor, collectorID string) ([]*domain.Visit, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateVisitInput) (*domain.Visit, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
