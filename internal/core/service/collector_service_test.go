package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubCollectorRepo struct {
	collectors map[string]*domain.Collector
	lastUpdate map[string]any
}

func newStubCollectorRepo() *stubCollectorRepo {
	return &stubCollectorRepo{collectors: make(map[string]*domain.Collector)}
}

func (r *stubCollectorRepo) Create(_ context.Context, c *domain.Collector) (*domain.Collector, error) {
	clone := *c
	clone.ID = fmt.Sprintf("col_%d", len(r.collectors)+1)
	r.collectors[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCollectorRepo) FindByID(_ context.Context, id string) (*domain.Collector, error) {
	c, ok := r.collectors[id]
	if !ok {
		return nil, domain.ErrCollectorNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCollectorRepo) FindByEmail(_ context.Context, email string) (*domain.Collector, error) {
	for _, c := range r.collectors {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCollectorNotFound
}

func (r *stubCollectorRepo) List(_ context.Context) ([]*domain.Collector, error) {
	var out []*domain.Collector
	for _, c := range r.collectors {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCollectorRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.Collector, error) {
	c, ok := r.collectors[id]
	if !ok {
		return nil, domain.ErrCollectorNotFound
	}
	r.lastUpdate = fields
	for k, v := range fields {
		switch k {
		case "name":
			c.Name = v.(string)
		case "phone":
			c.Phone = v.(string)
		case "email":
			c.Email = v.(string)
		case "password_hash":
			c.PasswordHash = v.(string)
		case "cedula":
			c.Cedula = v.(string)
		case "zone":
			c.Zone = v.(string)
		case "status":
			c.Status = domain.RecordStatus(v.(string))
		}
	}
	clone := *c
	return &clone, nil
}

func (r *stubCollectorRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.collectors[id]; !ok {
		return domain.ErrCollectorNotFound
	}
	delete(r.collectors, id)
	return nil
}

func (r *stubCollectorRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.collectors {
		if c.Status == domain.StatusActive {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newCollectorFixture(t *testing.T) (*CollectorService, *stubCollectorRepo, *stubClientRepo) {
	t.Helper()
	collectors := newStubCollectorRepo()
	clients := newStubClientRepo()
	svc := NewCollectorService(collectors, clients, discardLogger)
	return svc, collectors, clients
}

func TestCollectorService_Create_HashesPassword(t *testing.T) {
	svc, collectors, _ := newCollectorFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateCollectorInput{
		Name:     "Carlos Ruiz",
		Phone:    "3001234567",
		Email:    " Carlos@Example.com ",
		Password: "clave456",
		Cedula:   "123456789",
		Zone:     "norte",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := collectors.collectors[created.ID]
	if stored.PasswordHash == "clave456" {
		t.Fatal("password must never be stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave456")) != nil {
		t.Error("stored hash must verify against the original password")
	}
	if stored.Email != "carlos@example.com" {
		t.Errorf("email must be normalised, got %q", stored.Email)
	}
	if stored.Status != domain.StatusActive {
		t.Errorf("new collectors must start active, got %s", stored.Status)
	}
}

func TestCollectorService_Update_RehashesPassword(t *testing.T) {
	svc, collectors, _ := newCollectorFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateCollectorInput{
		Name: "Carlos", Phone: "300", Email: "c@example.com", Password: "vieja", Cedula: "1", Zone: "sur",
	})

	newPass := "nueva-clave"
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateCollectorInput{Password: &newPass}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := collectors.lastUpdate["password"]; ok {
		t.Fatal("the clear password must never reach the repository")
	}
	hash, ok := collectors.lastUpdate["password_hash"].(string)
	if !ok {
		t.Fatal("expected a password_hash field in the update")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(newPass)) != nil {
		t.Error("updated hash must verify against the new password")
	}
}

func TestCollectorService_Update_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newCollectorFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateCollectorInput{
		Name: "Carlos", Phone: "300", Email: "c@example.com", Password: "x", Cedula: "1", Zone: "sur",
	})

	bad := "suspended"
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateCollectorInput{Status: &bad}); !errors.Is(err, domain.ErrInvalidRecordStatus) {
		t.Fatalf("expected ErrInvalidRecordStatus, got %v", err)
	}
}

func TestCollectorService_Delete_BlockedWhileClientsAssigned(t *testing.T) {
	svc, collectors, clients := newCollectorFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateCollectorInput{
		Name: "Carlos", Phone: "300", Email: "c@example.com", Password: "x", Cedula: "1", Zone: "sur",
	})
	seedClient(clients, "client_1", created.ID)

	err := svc.Delete(context.Background(), created.ID)
	if !errors.Is(err, domain.ErrCollectorHasClients) {
		t.Fatalf("expected ErrCollectorHasClients, got %v", err)
	}
	if _, ok := collectors.collectors[created.ID]; !ok {
		t.Error("blocked delete must leave the collector in place")
	}
}

func TestCollectorService_Delete_SucceedsWhenUnassigned(t *testing.T) {
	svc, collectors, _ := newCollectorFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateCollectorInput{
		Name: "Carlos", Phone: "300", Email: "c@example.com", Password: "x", Cedula: "1", Zone: "sur",
	})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := collectors.collectors[created.ID]; ok {
		t.Error("collector must be gone after delete")
	}
}

func TestCollectorService_Delete_UnknownCollector(t *testing.T) {
	svc, _, _ := newCollectorFixture(t)

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrCollectorNotFound) {
		t.Fatalf("expected ErrCollectorNotFound, got %v", err)
	}
}
