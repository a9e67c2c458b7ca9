package ports

import "context"

// PortfolioSummary aggregates the dashboard figures. For admins the
// counts span the whole office; for collectors they are scoped to the
// collector's own clients and loans.
type PortfolioSummary struct {
	TotalClients    int64   `json:"total_clients"`
	TotalCollectors int64   `json:"total_collectors,omitempty"`
	ActiveLoans     int64   `json:"active_loans"`
	TotalPortfolio  float64 `json:"total_portfolio"`
	TotalPaid       float64 `json:"total_paid"`
	TotalPending    float64 `json:"total_pending"`
}

// PortfolioService computes dashboard summaries.
type PortfolioService interface {
	Summary(ctx context.Context, actor Actor) (*PortfolioSummary, error)
}
