package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	admins  map[string]*domain.AdminUser
	findErr error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{admins: make(map[string]*domain.AdminUser)}
}

func (r *stubAuthRepo) FindAdminByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	clone := *a
	return &clone, nil
}

func (r *stubAuthRepo) CountAdmins(_ context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

func (r *stubAuthRepo) CreateAdmin(_ context.Context, admin *domain.AdminUser) (*domain.AdminUser, error) {
	clone := *admin
	clone.ID = fmt.Sprintf("admin_%d", len(r.admins)+1)
	r.admins[clone.Email] = &clone
	out := clone
	return &out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func newAuthFixture(t *testing.T) (*AuthService, *stubAuthRepo, *stubCollectorRepo) {
	t.Helper()
	admins := newStubAuthRepo()
	collectors := newStubCollectorRepo()
	svc := NewAuthService(admins, collectors, testSecret, time.Hour, discardLogger)
	return svc, admins, collectors
}

func seedAdmin(t *testing.T, admins *stubAuthRepo, email, password string) {
	t.Helper()
	admins.admins[email] = &domain.AdminUser{
		ID:           "admin_1",
		Name:         "Don Jorge",
		Email:        email,
		PasswordHash: mustHash(t, password),
	}
}

func seedActiveCollector(t *testing.T, collectors *stubCollectorRepo, id, email, password string) {
	t.Helper()
	collectors.collectors[id] = &domain.Collector{
		ID:           id,
		Name:         "Carlos Ruiz",
		Email:        email,
		PasswordHash: mustHash(t, password),
		Status:       domain.StatusActive,
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Admin(t *testing.T) {
	svc, admins, _ := newAuthFixture(t)
	seedAdmin(t, admins, "jefe@example.com", "secreto123")

	token, session, err := svc.Login(context.Background(), "jefe@example.com", "secreto123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if session.Role != domain.RoleAdmin {
		t.Errorf("expected role admin, got %s", session.Role)
	}
	if session.CollectorID != "" {
		t.Errorf("admin session must not carry a collector_id, got %q", session.CollectorID)
	}
}

func TestAuthService_Login_Collector(t *testing.T) {
	svc, _, collectors := newAuthFixture(t)
	seedActiveCollector(t, collectors, "col_1", "carlos@example.com", "clave456")

	_, session, err := svc.Login(context.Background(), "carlos@example.com", "clave456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Role != domain.RoleCollector {
		t.Errorf("expected role collector, got %s", session.Role)
	}
	if session.CollectorID != "col_1" {
		t.Errorf("expected collector_id col_1, got %q", session.CollectorID)
	}
}

func TestAuthService_Login_AdminWinsOverCollector(t *testing.T) {
	svc, admins, collectors := newAuthFixture(t)
	seedAdmin(t, admins, "shared@example.com", "adminpass")
	seedActiveCollector(t, collectors, "col_1", "shared@example.com", "adminpass")

	_, session, err := svc.Login(context.Background(), "shared@example.com", "adminpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Role != domain.RoleAdmin {
		t.Errorf("admin record must win over collector, got %s", session.Role)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, admins, collectors := newAuthFixture(t)
	seedAdmin(t, admins, "jefe@example.com", "secreto123")
	seedActiveCollector(t, collectors, "col_1", "carlos@example.com", "clave456")
	collectors.collectors["col_2"] = &domain.Collector{
		ID:           "col_2",
		Email:        "baja@example.com",
		PasswordHash: mustHash(t, "clave789"),
		Status:       domain.StatusInactive,
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nadie@example.com", "whatever"},
		{"wrong admin password", "jefe@example.com", "wrong"},
		{"wrong collector password", "carlos@example.com", "wrong"},
		{"inactive collector", "baja@example.com", "clave789"},
		{"empty email", "", "secreto123"},
		{"empty password", "jefe@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_AdminLookupFailureSurfaces(t *testing.T) {
	svc, admins, collectors := newAuthFixture(t)
	seedActiveCollector(t, collectors, "col_1", "carlos@example.com", "clave456")
	admins.findErr = errors.New("connection reset")

	_, _, err := svc.Login(context.Background(), "carlos@example.com", "clave456")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not collapse to invalid credentials, got %v", err)
	}
	if err.Error() != "connection reset" {
		t.Errorf("expected the store error to surface, got %v", err)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	svc, _, collectors := newAuthFixture(t)
	seedActiveCollector(t, collectors, "col_1", "carlos@example.com", "clave456")

	tokenStr, _, err := svc.Login(context.Background(), "carlos@example.com", "clave456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != domain.RoleCollector {
		t.Errorf("expected role claim collector, got %v", claims["role"])
	}
	if claims["collector_id"] != "col_1" {
		t.Errorf("expected collector_id claim col_1, got %v", claims["collector_id"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must carry an expiry")
	}
}

// ---------------------------------------------------------------------------
// EnsureDefaultAdmin tests
// ---------------------------------------------------------------------------

func TestAuthService_EnsureDefaultAdmin_SeedsWhenEmpty(t *testing.T) {
	svc, admins, _ := newAuthFixture(t)

	if err := svc.EnsureDefaultAdmin(context.Background(), "Admin", "Admin@Example.com", "secreto123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seeded, ok := admins.admins["admin@example.com"]
	if !ok {
		t.Fatal("admin must be seeded with a lowercased email")
	}
	if seeded.PasswordHash == "secreto123" {
		t.Error("password must be stored hashed")
	}

	// The seeded account must be able to log in.
	if _, _, err := svc.Login(context.Background(), "admin@example.com", "secreto123"); err != nil {
		t.Fatalf("seeded admin login failed: %v", err)
	}
}

func TestAuthService_EnsureDefaultAdmin_SkipsWhenPresent(t *testing.T) {
	svc, admins, _ := newAuthFixture(t)
	seedAdmin(t, admins, "jefe@example.com", "secreto123")

	if err := svc.EnsureDefaultAdmin(context.Background(), "Admin", "admin@example.com", "otra"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admins.admins) != 1 {
		t.Errorf("no second admin must be seeded, got %d", len(admins.admins))
	}
}
