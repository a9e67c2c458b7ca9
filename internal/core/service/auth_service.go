package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// AuthService implements the credential check: admins first, then active
// collectors, bcrypt comparison, one generic failure for every cause.
type AuthService struct {
	admins     ports.AuthRepository
	collectors ports.CollectorRepository
	jwtSecret  string
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewAuthService(admins ports.AuthRepository, collectors ports.CollectorRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		admins:     admins,
		collectors: collectors,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

// Login checks the submitted credentials. Admin records win over
// collector records with the same email; collectors must be active.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.admins.FindAdminByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			return "", nil, domain.ErrInvalidCredentials
		}
		session := &domain.Session{
			UserID: admin.ID,
			Role:   domain.RoleAdmin,
			Email:  admin.Email,
			Name:   admin.Name,
		}
		token, err := s.generateToken(session)
		if err != nil {
			return "", nil, err
		}
		return token, session, nil
	case !errors.Is(err, domain.ErrInvalidCredentials):
		return "", nil, err
	}

	collector, err := s.collectors.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCollectorNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if collector.Status != domain.StatusActive {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(collector.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		UserID:      collector.ID,
		Role:        domain.RoleCollector,
		Email:       collector.Email,
		Name:        collector.Name,
		CollectorID: collector.ID,
	}
	token, err := s.generateToken(session)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// EnsureDefaultAdmin seeds the configured admin account when the admins
// collection is empty, so a fresh deployment is reachable.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, name, email, password string) error {
	count, err := s.admins.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.AdminUser{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.admins.CreateAdmin(ctx, admin); err != nil {
		return err
	}
	s.log.Info().Str("email", admin.Email).Msg("default admin seeded")
	return nil
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      session.UserID,
		"role":         session.Role,
		"email":        session.Email,
		"name":         session.Name,
		"collector_id": session.CollectorID,
		"exp":          time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
