package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubVisitRepo struct {
	visits map[string]*domain.Visit
	nextID int
}

func newStubVisitRepo() *stubVisitRepo {
	return &stubVisitRepo{visits: make(map[string]*domain.Visit)}
}

func (r *stubVisitRepo) Create(_ context.Context, v *domain.Visit) (*domain.Visit, error) {
	r.nextID++
	clone := *v
	clone.ID = fmt.Sprintf("visit_%d", r.nextID)
	r.visits[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubVisitRepo) FindByID(_ context.Context, id string) (*domain.Visit, error) {
	v, ok := r.visits[id]
	if !ok {
		return nil, domain.ErrVisitNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVisitRepo) List(_ context.Context, collectorID string) ([]*domain.Visit, error) {
	var out []*domain.Visit
	for _, v := range r.visits {
		if collectorID != "" && v.CollectorID != collectorID {
			continue
		}
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubVisitRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.Visit, error) {
	v, ok := r.visits[id]
	if !ok {
		return nil, domain.ErrVisitNotFound
	}
	for k, val := range fields {
		switch k {
		case "scheduled_date":
			v.ScheduledDate = val.(time.Time)
		case "status":
			v.Status = domain.VisitStatus(val.(string))
		case "notes":
			v.Notes = val.(string)
		}
	}
	clone := *v
	return &clone, nil
}

func (r *stubVisitRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.visits[id]; !ok {
		return domain.ErrVisitNotFound
	}
	delete(r.visits, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newVisitFixture(t *testing.T) (*VisitService, *stubVisitRepo) {
	t.Helper()
	visits := newStubVisitRepo()
	return NewVisitService(visits, discardLogger), visits
}

func seedVisit(visits *stubVisitRepo, id, collectorID string, status domain.VisitStatus) {
	visits.visits[id] = &domain.Visit{
		ID:            id,
		ClientID:      "client_1",
		CollectorID:   collectorID,
		ScheduledDate: time.Now().UTC(),
		Status:        status,
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestVisitService_Create_StartsPending(t *testing.T) {
	svc, _ := newVisitFixture(t)

	visit, err := svc.Create(context.Background(), adminActor, ports.CreateVisitInput{
		ClientID:      "client_1",
		CollectorID:   "col_1",
		ScheduledDate: time.Now().UTC().AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visit.Status != domain.VisitPending {
		t.Errorf("new visits must start pending, got %s", visit.Status)
	}
	if visit.CollectorID != "col_1" {
		t.Errorf("expected collector col_1, got %q", visit.CollectorID)
	}
}

func TestVisitService_Create_CollectorOwnsOwnVisits(t *testing.T) {
	svc, _ := newVisitFixture(t)

	visit, err := svc.Create(context.Background(), collectorActor("col_1"), ports.CreateVisitInput{
		ClientID:      "client_1",
		CollectorID:   "col_2",
		ScheduledDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visit.CollectorID != "col_1" {
		t.Errorf("collector visits must belong to the caller, got %q", visit.CollectorID)
	}
}

func TestVisitService_Update_MarksCompleted(t *testing.T) {
	svc, visits := newVisitFixture(t)
	seedVisit(visits, "visit_1", "col_1", domain.VisitPending)

	status := "completed"
	visit, err := svc.Update(context.Background(), collectorActor("col_1"), "visit_1", ports.UpdateVisitInput{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visit.Status != domain.VisitCompleted {
		t.Errorf("expected completed, got %s", visit.Status)
	}
}

func TestVisitService_Update_RejectsUnknownStatus(t *testing.T) {
	svc, visits := newVisitFixture(t)
	seedVisit(visits, "visit_1", "col_1", domain.VisitPending)

	status := "cancelled"
	_, err := svc.Update(context.Background(), adminActor, "visit_1", ports.UpdateVisitInput{
		Status: &status,
	})
	if !errors.Is(err, domain.ErrInvalidVisitStatus) {
		t.Fatalf("expected ErrInvalidVisitStatus, got %v", err)
	}
	if visits.visits["visit_1"].Status != domain.VisitPending {
		t.Error("rejected update must not change the stored status")
	}
}

func TestVisitService_Update_ForeignVisitNotFound(t *testing.T) {
	svc, visits := newVisitFixture(t)
	seedVisit(visits, "visit_1", "col_1", domain.VisitPending)

	status := "missed"
	_, err := svc.Update(context.Background(), collectorActor("col_2"), "visit_1", ports.UpdateVisitInput{
		Status: &status,
	})
	if !errors.Is(err, domain.ErrVisitNotFound) {
		t.Fatalf("foreign visits must read as not found, got %v", err)
	}
}

func TestVisitService_Get_ScopedToCollector(t *testing.T) {
	svc, visits := newVisitFixture(t)
	seedVisit(visits, "visit_1", "col_1", domain.VisitPending)

	if _, err := svc.Get(context.Background(), collectorActor("col_1"), "visit_1"); err != nil {
		t.Fatalf("owner must read their visit: %v", err)
	}
	if _, err := svc.Get(context.Background(), collectorActor("col_2"), "visit_1"); !errors.Is(err, domain.ErrVisitNotFound) {
		t.Fatalf("foreign visits must read as not found, got %v", err)
	}
}

func TestVisitService_List_ScopedToCollector(t *testing.T) {
	svc, visits := newVisitFixture(t)
	seedVisit(visits, "visit_1", "col_1", domain.VisitPending)
	seedVisit(visits, "visit_2", "col_2", domain.VisitPending)

	out, err := svc.List(context.Background(), collectorActor("col_1"), "col_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].CollectorID != "col_1" {
		t.Errorf("collector must only see their own schedule, got %d visits", len(out))
	}
}

func TestVisitService_Delete_ForeignVisitNotFound(t *testing.T) {
	svc, visits := newVisitFixture(t)
	seedVisit(visits, "visit_1", "col_1", domain.VisitPending)

	if err := svc.Delete(context.Background(), collectorActor("col_2"), "visit_1"); !errors.Is(err, domain.ErrVisitNotFound) {
		t.Fatalf("foreign visits must read as not found, got %v", err)
	}
	if err := svc.Delete(context.Background(), collectorActor("col_1"), "visit_1"); err != nil {
		t.Fatalf("owner must delete their visit: %v", err)
	}
	if _, ok := visits.visits["visit_1"]; ok {
		t.Error("visit must be gone after delete")
	}
}
