package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// IdempotencyStore abstracts the payment replay cache (Redis). Get
// returns (nil, nil) when the key has not been seen.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*ports.PaymentResult, error)
	Put(ctx context.Context, key string, result *ports.PaymentResult) error
}

// LoanService implements the loan ledger: term computation at creation
// and payment application against the running totals.
type LoanService struct {
	loans    ports.LoanRepository
	payments ports.PaymentRepository
	clients  ports.ClientRepository
	idem     IdempotencyStore
	log      zerolog.Logger
}

func NewLoanService(
	loans ports.LoanRepository,
	payments ports.PaymentRepository,
	clients ports.ClientRepository,
	idem IdempotencyStore,
	log zerolog.Logger,
) *LoanService {
	return &LoanService{
		loans:    loans,
		payments: payments,
		clients:  clients,
		idem:     idem,
		log:      log,
	}
}

// Create computes the loan terms and persists the new loan. Collectors
// can only lend to their own clients; the collector on the loan is
// always the client's collector.
func (s *LoanService) Create(ctx context.Context, actor ports.Actor, input ports.CreateLoanInput) (*domain.Loan, error) {
	terms, err := domain.ComputeLoanTerms(input.Amount, input.InterestRate, input.Installments)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && client.CollectorID != actor.CollectorID {
		return nil, domain.ErrClientNotFound
	}

	collectorID := input.CollectorID
	if collectorID == "" {
		collectorID = client.CollectorID
	}
	if actor.Role == domain.RoleCollector {
		collectorID = actor.CollectorID
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		ClientID:          input.ClientID,
		CollectorID:       collectorID,
		Amount:            input.Amount,
		InterestRate:      input.InterestRate,
		TotalAmount:       terms.TotalAmount,
		InstallmentAmount: terms.InstallmentAmount,
		Installments:      input.Installments,
		PaidAmount:        0,
		PaidInstallments:  0,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, input.Installments),
		Status:            domain.LoanActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.loans.Create(ctx, loan)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create loan")
		return nil, err
	}

	s.log.Info().
		Str("loan_id", created.ID).
		Str("client_id", created.ClientID).
		Float64("total_amount", created.TotalAmount).
		Int("installments", created.Installments).
		Msg("loan created")

	return created, nil
}

func (s *LoanService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Loan, error) {
	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && loan.CollectorID != actor.CollectorID {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

func (s *LoanService) List(ctx context.Context, actor ports.Actor, filter ports.ListLoansFilter) ([]*domain.Loan, error) {
	if actor.Role == domain.RoleCollector {
		filter.CollectorID = actor.CollectorID
	}
	return s.loans.List(ctx, filter)
}

// OverrideStatus is the manual status edit (admin only, enforced at the
// route). It is the sole path to the defaulted state.
func (s *LoanService) OverrideStatus(ctx context.Context, id string, status domain.LoanStatus) (*domain.Loan, error) {
	if !domain.ValidLoanStatus(status) {
		return nil, domain.ErrInvalidLoanStatus
	}
	loan, err := s.loans.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("loan_id", id).Str("status", string(status)).Msg("loan status overridden")
	return loan, nil
}

// ApplyPayment records one payment against a loan. The loan totals are
// updated first through an atomic compare-and-swap, then the immutable
// payment record is appended. A payment against a missing loan is
// rejected outright; nothing is recorded.
func (s *LoanService) ApplyPayment(ctx context.Context, actor ports.Actor, input ports.ApplyPaymentInput) (*ports.PaymentResult, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidPayment
	}

	if input.IdempotencyKey != "" {
		prev, err := s.idem.Get(ctx, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", input.IdempotencyKey).Msg("idempotency lookup failed, applying anyway")
		} else if prev != nil {
			s.log.Info().Str("key", input.IdempotencyKey).Str("loan_id", prev.LoanID).Msg("idempotent payment replay")
			replay := *prev
			replay.AlreadyApplied = true
			return &replay, nil
		}
	}

	loan, err := s.loans.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && loan.CollectorID != actor.CollectorID {
		return nil, domain.ErrLoanNotFound
	}

	updated, err := s.loans.ApplyPayment(ctx, input.LoanID, input.Amount)
	if err != nil {
		s.log.Error().Err(err).Str("loan_id", input.LoanID).Msg("failed to apply payment")
		return nil, err
	}

	payment := &domain.Payment{
		LoanID:      updated.ID,
		ClientID:    updated.ClientID,
		CollectorID: updated.CollectorID,
		Amount:      input.Amount,
		Notes:       input.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	inserted, err := s.payments.Insert(ctx, payment)
	if err != nil {
		// The ledger totals already moved; the loan document stays
		// authoritative even when the payment log write fails.
		s.log.Error().Err(err).Str("loan_id", updated.ID).Msg("failed to append payment record")
	} else {
		payment = inserted
	}

	result := &ports.PaymentResult{
		PaymentID:        payment.ID,
		LoanID:           updated.ID,
		Amount:           input.Amount,
		PaidAmount:       updated.PaidAmount,
		PaidInstallments: updated.PaidInstallments,
		Pending:          updated.Pending(),
		LoanStatus:       updated.Status,
	}

	if input.IdempotencyKey != "" {
		if err := s.idem.Put(ctx, input.IdempotencyKey, result); err != nil {
			s.log.Warn().Err(err).Str("key", input.IdempotencyKey).Msg("failed to store idempotency result")
		}
	}

	s.log.Info().
		Str("loan_id", updated.ID).
		Float64("amount", input.Amount).
		Float64("paid_amount", updated.PaidAmount).
		Str("status", string(updated.Status)).
		Msg("payment applied")

	return result, nil
}

func (s *LoanService) ListPayments(ctx context.Context, actor ports.Actor, loanID string) ([]*domain.Payment, error) {
	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCollector && loan.CollectorID != actor.CollectorID {
		return nil, domain.ErrLoanNotFound
	}
	return s.payments.ListByLoan(ctx, loanID)
}
