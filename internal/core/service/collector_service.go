package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// CollectorService implements collector administration. Passwords are
// hashed here before they ever reach the repository.
type CollectorService struct {
	collectors ports.CollectorRepository
	clients    ports.ClientRepository
	log        zerolog.Logger
}

func NewCollectorService(collectors ports.CollectorRepository, clients ports.ClientRepository, log zerolog.Logger) *CollectorService {
	return &CollectorService{collectors: collectors, clients: clients, log: log}
}

func (s *CollectorService) Create(ctx context.Context, input ports.CreateCollectorInput) (*domain.Collector, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	collector := &domain.Collector{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Cedula:       input.Cedula,
		Zone:         input.Zone,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.collectors.Create(ctx, collector)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create collector")
		return nil, err
	}
	s.log.Info().Str("collector_id", created.ID).Str("zone", created.Zone).Msg("collector created")
	return created, nil
}

func (s *CollectorService) Get(ctx context.Context, id string) (*domain.Collector, error) {
	return s.collectors.FindByID(ctx, id)
}

func (s *CollectorService) List(ctx context.Context) ([]*domain.Collector, error) {
	return s.collectors.List(ctx)
}

func (s *CollectorService) Update(ctx context.Context, id string, input ports.UpdateCollectorInput) (*domain.Collector, error) {
	fields := map[string]any{}
	setString(fields, "name", input.Name)
	setString(fields, "phone", input.Phone)
	setString(fields, "cedula", input.Cedula)
	setString(fields, "zone", input.Zone)
	if input.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = string(hash)
	}
	if input.Status != nil {
		status := domain.RecordStatus(*input.Status)
		if status != domain.StatusActive && status != domain.StatusInactive {
			return nil, domain.ErrInvalidRecordStatus
		}
		fields["status"] = string(status)
	}

	return s.collectors.Update(ctx, id, fields)
}

// Delete removes a collector unless any client still references it.
func (s *CollectorService) Delete(ctx context.Context, id string) error {
	if _, err := s.collectors.FindByID(ctx, id); err != nil {
		return err
	}

	assigned, err := s.clients.CountByCollector(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return domain.ErrCollectorHasClients
	}

	if err := s.collectors.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("collector_id", id).Msg("collector deleted")
	return nil
}
