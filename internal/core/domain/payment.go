package domain

import (
	"errors"
	"time"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Payment is an append-only record of money received against a loan.
// Payments are never mutated or deleted; the timestamp is assigned by the
// server at application time, never supplied by the caller.
type Payment struct {
	ID          string    `json:"id"`
	LoanID      string    `json:"loan_id"`
	ClientID    string    `json:"client_id"`
	CollectorID string    `json:"collector_id"`
	Amount      float64   `json:"amount"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
