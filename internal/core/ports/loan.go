package ports

import (
	"context"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// CreateLoanInput carries the parameters of a new loan. Derived figures
// (total, installment amount, dates) are computed by the ledger.
type CreateLoanInput struct {
	ClientID     string
	CollectorID  string
	Amount       float64
	InterestRate float64
	Installments int
}

// ListLoansFilter carries the equality filters for listing loans.
type ListLoansFilter struct {
	CollectorID string
	ClientID    string
}

// ApplyPaymentInput carries a payment submission.
type ApplyPaymentInput struct {
	LoanID string
	Amount float64
	Notes  string
	// IdempotencyKey, when non-empty, makes duplicate submissions replay
	// the first result instead of applying the payment twice.
	IdempotencyKey string
}

// PaymentResult is returned after a payment is applied to the ledger.
type PaymentResult struct {
	PaymentID        string            `json:"payment_id"`
	LoanID           string            `json:"loan_id"`
	Amount           float64           `json:"amount"`
	PaidAmount       float64           `json:"paid_amount"`
	PaidInstallments int               `json:"paid_installments"`
	Pending          float64           `json:"pending"`
	LoanStatus       domain.LoanStatus `json:"loan_status"`
	// AlreadyApplied is true when the Idempotency-Key matched a previous
	// submission and no new ledger mutation happened.
	AlreadyApplied bool `json:"already_applied,omitempty"`
}

// LoanRepository defines persistence operations for loans.
type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, filter ListLoansFilter) ([]*domain.Loan, error)
	// ApplyPayment atomically folds one payment into the loan's running
	// totals with a compare-and-swap on the current paidAmount, closing
	// the partial-failure window between "update loan" and "append
	// payment". It returns the loan as it looks after the swap.
	ApplyPayment(ctx context.Context, id string, amount float64) (*domain.Loan, error)
	UpdateStatus(ctx context.Context, id string, status domain.LoanStatus) (*domain.Loan, error)
	// Totals sums totalAmount and paidAmount over loans, optionally
	// scoped to one collector, and counts active loans.
	Totals(ctx context.Context, collectorID string) (LoanTotals, error)
}

// LoanTotals aggregates portfolio figures over a set of loans.
type LoanTotals struct {
	TotalPortfolio float64 `json:"total_portfolio"`
	TotalPaid      float64 `json:"total_paid"`
	ActiveLoans    int64   `json:"active_loans"`
}

// PaymentRepository defines persistence for the append-only payment log.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	ListByLoan(ctx context.Context, loanID string) ([]*domain.Payment, error)
}

// LoanService defines the ledger use cases.
type LoanService interface {
	Create(ctx context.Context, actor Actor, input CreateLoanInput) (*domain.Loan, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Loan, error)
	List(ctx context.Context, actor Actor, filter ListLoansFilter) ([]*domain.Loan, error)
	// OverrideStatus is the admin-only manual status edit; it is the only
	// way a loan ever becomes defaulted.
	OverrideStatus(ctx context.Context, id string, status domain.LoanStatus) (*domain.Loan, error)
	ApplyPayment(ctx context.Context, actor Actor, input ApplyPaymentInput) (*PaymentResult, error)
	ListPayments(ctx context.Context, actor Actor, loanID string) ([]*domain.Payment, error)
}
