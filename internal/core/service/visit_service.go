package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// VisitService implements visit scheduling and the pending →
// completed|missed transitions, scoped to the owning collector.
type VisitService struct {
	visits ports.VisitRepository
	log    zerolog.Logger
}

func NewVisitService(visits ports.VisitRepository, log zerolog.Logger) *VisitService {
	return &VisitService{visits: visits, log: log}
}

func (s *VisitService) Create(ctx context.Context, actor ports.Actor, input ports.CreateVisitInput) (*domain.Visit, error) {
	collectorID := input.CollectorID
	if actor.Role == domain.RoleCollector {
		collectorID = actor.CollectorID
	}

	now := time.Now().UTC()
	visit := &domain.Visit{
		ClientID:      input.ClientID,
		CollectorID:   collectorID,
		LoanID:        input.LoanID,
		ScheduledDate: input.ScheduledDate,
		Status:        domain.VisitPending,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.visits.Create(ctx, visit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create visit")
		return nil, err
	}
	return created, nil
}

func (s *VisitService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && visit.CollectorID != actor.CollectorID {
		return nil, domain.ErrVisitNotFound
	}
	return visit, nil
}

func (s *VisitService) List(ctx context.Context, actor ports.Actor, collectorID string) ([]*domain.Visit, error) {
	if actor.Role == domain.RoleCollector {
		collectorID = actor.CollectorID
	}
	return s.visits.List(ctx, collectorID)
}

func (s *VisitService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateVisitInput) (*domain.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && visit.CollectorID != actor.CollectorID {
		return nil, domain.ErrVisitNotFound
	}

	fields := map[string]any{}
	if input.ScheduledDate != nil {
		fields["scheduled_date"] = input.ScheduledDate.UTC()
	}
	if input.Status != nil {
		status := domain.VisitStatus(*input.Status)
		if !domain.ValidVisitStatus(status) {
			return nil, domain.ErrInvalidVisitStatus
		}
		fields["status"] = string(status)
	}
	setString(fields, "notes", input.Notes)

	return s.visits.Update(ctx, id, fields)
}

func (s *VisitService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleCollector && visit.CollectorID != actor.CollectorID {
		return domain.ErrVisitNotFound
	}
	return s.visits.Delete(ctx, id)
}
