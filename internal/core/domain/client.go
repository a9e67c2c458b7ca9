package domain

import (
	"errors"
	"time"
)

// RecordStatus marks a client or collector as active or inactive.
type RecordStatus string

const (
	StatusActive   RecordStatus = "active"
	StatusInactive RecordStatus = "inactive"
)

var ErrClientNotFound = errors.New("client not found")
var ErrInvalidRecordStatus = errors.New("invalid status")

// Client is a borrower managed by a collector.
type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Address     string       `json:"address"`
	Cedula      string       `json:"cedula"`
	Email       string       `json:"email,omitempty"`
	CollectorID string       `json:"collector_id"`
	Status      RecordStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
