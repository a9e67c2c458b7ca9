package domain

import (
	"errors"
	"time"
)

// VisitStatus represents the state of a scheduled collection visit.
type VisitStatus string

const (
	VisitPending   VisitStatus = "pending"
	VisitCompleted VisitStatus = "completed"
	VisitMissed    VisitStatus = "missed"
)

var ErrVisitNotFound = errors.New("visit not found")
var ErrInvalidVisitStatus = errors.New("invalid visit status")

// ValidVisitStatus reports whether s is one of the declared visit statuses.
func ValidVisitStatus(s VisitStatus) bool {
	switch s {
	case VisitPending, VisitCompleted, VisitMissed:
		return true
	}
	return false
}

// Visit is a scheduled in-person collection appointment tied to a client
// and optionally a loan.
type Visit struct {
	ID            string      `json:"id"`
	ClientID      string      `json:"client_id"`
	CollectorID   string      `json:"collector_id"`
	LoanID        string      `json:"loan_id,omitempty"`
	ScheduledDate time.Time   `json:"scheduled_date"`
	Status        VisitStatus `json:"status"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
