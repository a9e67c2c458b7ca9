package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanCompleted LoanStatus = "completed"
	// LoanDefaulted is never assigned automatically; the only path to it
	// is an explicit admin status override.
	LoanDefaulted LoanStatus = "defaulted"
)

var ErrLoanNotFound = errors.New("loan not found")

// ErrLoanConflict signals that concurrent payments kept invalidating the
// compare-and-swap after all retries.
var ErrLoanConflict = errors.New("loan update conflict")
var ErrInvalidLoanTerms = errors.New("invalid loan terms")
var ErrInvalidLoanStatus = errors.New("invalid loan status")
var ErrInvalidPayment = errors.New("invalid payment")

// ValidLoanStatus reports whether s is one of the declared loan statuses.
func ValidLoanStatus(s LoanStatus) bool {
	switch s {
	case LoanActive, LoanCompleted, LoanDefaulted:
		return true
	}
	return false
}

// Loan is a single principal-plus-interest obligation repaid in fixed
// daily installments.
type Loan struct {
	ID                string     `json:"id"`
	ClientID          string     `json:"client_id"`
	CollectorID       string     `json:"collector_id"`
	Amount            float64    `json:"amount"`
	InterestRate      float64    `json:"interest_rate"`
	TotalAmount       float64    `json:"total_amount"`
	InstallmentAmount float64    `json:"installment_amount"`
	Installments      int        `json:"installments"`
	PaidAmount        float64    `json:"paid_amount"`
	PaidInstallments  int        `json:"paid_installments"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	Status            LoanStatus `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// LoanTerms holds the derived figures computed at loan creation.
type LoanTerms struct {
	TotalAmount       float64
	InstallmentAmount float64
}

// ComputeLoanTerms derives the total owed and the per-installment amount:
//
//	totalAmount       = principal * (1 + ratePct/100)
//	installmentAmount = ceil(totalAmount / installments)
//
// Rounding the installment is always upward: the last installment may
// overshoot the total slightly, never undershoot it. Decimal arithmetic
// keeps the totals exact (100000 at 20% is exactly 120000, not a float
// neighbour of it).
func ComputeLoanTerms(principal, ratePct float64, installments int) (LoanTerms, error) {
	if principal <= 0 || installments <= 0 || ratePct < 0 {
		return LoanTerms{}, ErrInvalidLoanTerms
	}

	p := decimal.NewFromFloat(principal)
	rate := decimal.NewFromFloat(ratePct).Div(decimal.NewFromInt(100))
	total := p.Mul(decimal.NewFromInt(1).Add(rate))
	installment := total.Div(decimal.NewFromInt(int64(installments))).Ceil()

	return LoanTerms{
		TotalAmount:       total.InexactFloat64(),
		InstallmentAmount: installment.InexactFloat64(),
	}, nil
}

// RecordPayment applies a single payment to the loan's running totals.
// Every payment counts as exactly one installment regardless of amount;
// partial and overpayments are accepted without a cap. The transition to
// completed is one-way: once paidAmount covers totalAmount the loan stays
// completed no matter what is applied afterwards.
func (l *Loan) RecordPayment(amount float64) error {
	if amount <= 0 {
		return ErrInvalidPayment
	}

	l.PaidAmount += amount
	l.PaidInstallments++
	if l.PaidAmount >= l.TotalAmount {
		l.Status = LoanCompleted
	}
	return nil
}

// Pending returns the amount still owed, never negative.
func (l *Loan) Pending() float64 {
	if l.PaidAmount >= l.TotalAmount {
		return 0
	}
	return l.TotalAmount - l.PaidAmount
}
