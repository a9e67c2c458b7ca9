package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubInventoryRepo struct {
	items  map[string]*domain.InventoryItem
	nextID int
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[string]*domain.InventoryItem)}
}

func (r *stubInventoryRepo) Create(_ context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	r.nextID++
	clone := *item
	clone.ID = fmt.Sprintf("item_%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id string) (*domain.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *stubInventoryRepo) List(_ context.Context, collectorID string) ([]*domain.InventoryItem, error) {
	var out []*domain.InventoryItem
	for _, item := range r.items {
		if collectorID != "" && item.CollectorID != collectorID {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubInventoryRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			item.Status = domain.ItemStatus(v.(string))
		case "notes":
			item.Notes = v.(string)
		}
	}
	clone := *item
	return &clone, nil
}

func (r *stubInventoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newInventoryFixture(t *testing.T) (*InventoryService, *stubInventoryRepo) {
	t.Helper()
	items := newStubInventoryRepo()
	return NewInventoryService(items, discardLogger), items
}

func seedItem(items *stubInventoryRepo, id, collectorID string) {
	items.items[id] = &domain.InventoryItem{
		ID:          id,
		CollectorID: collectorID,
		ItemType:    domain.ItemTablet,
		Description: "Samsung tablet",
		Status:      domain.ItemAssigned,
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestInventoryService_Create_StartsAssigned(t *testing.T) {
	svc, _ := newInventoryFixture(t)

	item, err := svc.Create(context.Background(), ports.CreateItemInput{
		CollectorID: "col_1",
		ItemType:    "motorcycle",
		Description: "Honda CB125",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Status != domain.ItemAssigned {
		t.Errorf("new items must start assigned, got %s", item.Status)
	}
	if item.AssignedDate.IsZero() {
		t.Error("omitted assigned date must default to now")
	}
}

func TestInventoryService_Create_RejectsUnknownType(t *testing.T) {
	svc, items := newInventoryFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateItemInput{
		CollectorID: "col_1",
		ItemType:    "laptop",
		Description: "not in the catalog",
	})
	if !errors.Is(err, domain.ErrInvalidItemType) {
		t.Fatalf("expected ErrInvalidItemType, got %v", err)
	}
	if len(items.items) != 0 {
		t.Error("rejected item must not be stored")
	}
}

func TestInventoryService_Update_MarksReturned(t *testing.T) {
	svc, items := newInventoryFixture(t)
	seedItem(items, "item_1", "col_1")

	status := "returned"
	item, err := svc.Update(context.Background(), "item_1", ports.UpdateItemInput{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Status != domain.ItemReturned {
		t.Errorf("expected returned, got %s", item.Status)
	}
}

func TestInventoryService_Update_RejectsUnknownStatus(t *testing.T) {
	svc, items := newInventoryFixture(t)
	seedItem(items, "item_1", "col_1")

	status := "broken"
	_, err := svc.Update(context.Background(), "item_1", ports.UpdateItemInput{Status: &status})
	if !errors.Is(err, domain.ErrInvalidItemStatus) {
		t.Fatalf("expected ErrInvalidItemStatus, got %v", err)
	}
	if items.items["item_1"].Status != domain.ItemAssigned {
		t.Error("rejected update must not change the stored status")
	}
}

func TestInventoryService_Get_ScopedToCollector(t *testing.T) {
	svc, items := newInventoryFixture(t)
	seedItem(items, "item_1", "col_1")

	if _, err := svc.Get(context.Background(), collectorActor("col_1"), "item_1"); err != nil {
		t.Fatalf("owner must read their item: %v", err)
	}
	if _, err := svc.Get(context.Background(), collectorActor("col_2"), "item_1"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("foreign items must read as not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, "item_1"); err != nil {
		t.Fatalf("admin must read any item: %v", err)
	}
}

func TestInventoryService_List_ScopedToCollector(t *testing.T) {
	svc, items := newInventoryFixture(t)
	seedItem(items, "item_1", "col_1")
	seedItem(items, "item_2", "col_2")

	out, err := svc.List(context.Background(), collectorActor("col_1"), "col_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].CollectorID != "col_1" {
		t.Errorf("collector must only see their own gear, got %d items", len(out))
	}
}
