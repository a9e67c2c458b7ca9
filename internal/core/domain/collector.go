package domain

import (
	"errors"
	"time"
)

var ErrCollectorNotFound = errors.New("collector not found")

// ErrCollectorHasClients blocks deletion of a collector while any client
// still references it. This is the one referential guard in the system.
var ErrCollectorHasClients = errors.New("collector has assigned clients")

// Collector is a field agent who manages a subset of clients and records
// their payments and visits.
type Collector struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Cedula       string       `json:"cedula"`
	Zone         string       `json:"zone"`
	Status       RecordStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
