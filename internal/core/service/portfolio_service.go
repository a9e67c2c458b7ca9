package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// SummaryCache abstracts the short-TTL dashboard cache (Redis). Get
// returns (nil, nil) on a miss; staleness is bounded by the TTL, so
// writes never invalidate.
type SummaryCache interface {
	Get(ctx context.Context, scope string) (*ports.PortfolioSummary, error)
	Put(ctx context.Context, scope string, summary *ports.PortfolioSummary) error
}

// PortfolioService computes the dashboard figures: portfolio-wide for
// admins, scoped to the collector's own loans otherwise.
type PortfolioService struct {
	loans      ports.LoanRepository
	clients    ports.ClientRepository
	collectors ports.CollectorRepository
	cache      SummaryCache
	log        zerolog.Logger
}

func NewPortfolioService(
	loans ports.LoanRepository,
	clients ports.ClientRepository,
	collectors ports.CollectorRepository,
	cache SummaryCache,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		loans:      loans,
		clients:    clients,
		collectors: collectors,
		cache:      cache,
		log:        log,
	}
}

func (s *PortfolioService) Summary(ctx context.Context, actor ports.Actor) (*ports.PortfolioSummary, error) {
	scope := "office"
	collectorID := ""
	if actor.Role == domain.RoleCollector {
		scope = actor.CollectorID
		collectorID = actor.CollectorID
	}

	if cached, err := s.cache.Get(ctx, scope); err != nil {
		s.log.Warn().Err(err).Str("scope", scope).Msg("summary cache lookup failed")
	} else if cached != nil {
		return cached, nil
	}

	totals, err := s.loans.Totals(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	clientCount, err := s.clients.CountActive(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	summary := &ports.PortfolioSummary{
		TotalClients:   clientCount,
		ActiveLoans:    totals.ActiveLoans,
		TotalPortfolio: totals.TotalPortfolio,
		TotalPaid:      totals.TotalPaid,
		TotalPending:   totals.TotalPortfolio - totals.TotalPaid,
	}

	if actor.Role == domain.RoleAdmin {
		collectorCount, err := s.collectors.CountActive(ctx)
		if err != nil {
			return nil, err
		}
		summary.TotalCollectors = collectorCount
	}

	if err := s.cache.Put(ctx, scope, summary); err != nil {
		s.log.Warn().Err(err).Str("scope", scope).Msg("failed to cache summary")
	}

	return summary, nil
}
