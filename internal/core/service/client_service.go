package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// ClientService implements client CRUD with collector scoping: a
// collector only ever sees and touches their own clients.
type ClientService struct {
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

func (s *ClientService) Create(ctx context.Context, actor ports.Actor, input ports.CreateClientInput) (*domain.Client, error) {
	collectorID := input.CollectorID
	if actor.Role == domain.RoleCollector {
		// Collectors always own the clients they register.
		collectorID = actor.CollectorID
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Name:        input.Name,
		Phone:       input.Phone,
		Address:     input.Address,
		Cedula:      input.Cedula,
		Email:       input.Email,
		CollectorID: collectorID,
		Status:      domain.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create client")
		return nil, err
	}
	s.log.Info().Str("client_id", created.ID).Str("collector_id", created.CollectorID).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && client.CollectorID != actor.CollectorID {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, actor ports.Actor, collectorID string) ([]*domain.Client, error) {
	if actor.Role == domain.RoleCollector {
		collectorID = actor.CollectorID
	}
	return s.clients.List(ctx, collectorID)
}

func (s *ClientService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setString(fields, "name", input.Name)
	setString(fields, "phone", input.Phone)
	setString(fields, "address", input.Address)
	setString(fields, "cedula", input.Cedula)
	setString(fields, "email", input.Email)
	if actor.Role == domain.RoleAdmin {
		setString(fields, "collector_id", input.CollectorID)
	}
	if input.Status != nil {
		status := domain.RecordStatus(*input.Status)
		if status != domain.StatusActive && status != domain.StatusInactive {
			return nil, domain.ErrInvalidRecordStatus
		}
		fields["status"] = string(status)
	}

	return s.clients.Update(ctx, id, fields)
}

func (s *ClientService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

// setString adds a pointer field to the partial update map when set.
func setString(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}
