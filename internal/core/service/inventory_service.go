package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// InventoryService implements equipment assignment. Writes are reached
// through admin-only routes; collectors list their own assignments.
type InventoryService struct {
	items ports.InventoryRepository
	log   zerolog.Logger
}

func NewInventoryService(items ports.InventoryRepository, log zerolog.Logger) *InventoryService {
	return &InventoryService{items: items, log: log}
}

func (s *InventoryService) Create(ctx context.Context, input ports.CreateItemInput) (*domain.InventoryItem, error) {
	itemType := domain.ItemType(input.ItemType)
	if !domain.ValidItemType(itemType) {
		return nil, domain.ErrInvalidItemType
	}

	assigned := input.AssignedDate
	if assigned.IsZero() {
		assigned = time.Now().UTC()
	}

	now := time.Now().UTC()
	item := &domain.InventoryItem{
		CollectorID:  input.CollectorID,
		ItemType:     itemType,
		Description:  input.Description,
		SerialNumber: input.SerialNumber,
		AssignedDate: assigned,
		Status:       domain.ItemAssigned,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create inventory item")
		return nil, err
	}
	return created, nil
}

func (s *InventoryService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.InventoryItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && item.CollectorID != actor.CollectorID {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context, actor ports.Actor, collectorID string) ([]*domain.InventoryItem, error) {
	if actor.Role == domain.RoleCollector {
		collectorID = actor.CollectorID
	}
	return s.items.List(ctx, collectorID)
}

func (s *InventoryService) Update(ctx context.Context, id string, input ports.UpdateItemInput) (*domain.InventoryItem, error) {
	fields := map[string]any{}
	if input.Status != nil {
		status := domain.ItemStatus(*input.Status)
		if !domain.ValidItemStatus(status) {
			return nil, domain.ErrInvalidItemStatus
		}
		fields["status"] = string(status)
	}
	setString(fields, "notes", input.Notes)

	return s.items.Update(ctx, id, fields)
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
