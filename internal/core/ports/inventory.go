package ports

import (
	"context"
	"time"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// CreateItemInput carries the fields accepted when assigning equipment.
type CreateItemInput struct {
	CollectorID  string
	ItemType     string
	Description  string
	SerialNumber string
	AssignedDate time.Time
	Notes        string
}

// UpdateItemInput is a partial field merge (status transitions, notes).
type UpdateItemInput struct {
	Status *string
	Notes  *string
}

// InventoryRepository defines persistence operations for inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, collectorID string) ([]*domain.InventoryItem, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

// InventoryService defines use-case operations for inventory items.
// Writes are admin-only; collectors can list their own assignments.
type InventoryService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.InventoryItem, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, actor Actor, collectorID string) ([]*domain.InventoryItem, error)
	Update(ctx context.Context, id string, input UpdateItemInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}
