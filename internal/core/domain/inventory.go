package domain

import (
	"errors"
	"time"
)

// ItemType enumerates the kinds of equipment assigned to collectors.
type ItemType string

const (
	ItemTablet     ItemType = "tablet"
	ItemPhone      ItemType = "phone"
	ItemMotorcycle ItemType = "motorcycle"
	ItemCash       ItemType = "cash"
	ItemDocuments  ItemType = "documents"
	ItemOther      ItemType = "other"
)

// ItemStatus represents the assignment state of an inventory item.
type ItemStatus string

const (
	ItemAssigned ItemStatus = "assigned"
	ItemReturned ItemStatus = "returned"
	ItemLost     ItemStatus = "lost"
)

var ErrItemNotFound = errors.New("inventory item not found")
var ErrInvalidItemType = errors.New("invalid item type")
var ErrInvalidItemStatus = errors.New("invalid item status")

// ValidItemType reports whether t is one of the declared item types.
func ValidItemType(t ItemType) bool {
	switch t {
	case ItemTablet, ItemPhone, ItemMotorcycle, ItemCash, ItemDocuments, ItemOther:
		return true
	}
	return false
}

// ValidItemStatus reports whether s is one of the declared item statuses.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemAssigned, ItemReturned, ItemLost:
		return true
	}
	return false
}

// InventoryItem is a piece of equipment assigned to a collector.
type InventoryItem struct {
	ID           string     `json:"id"`
	CollectorID  string     `json:"collector_id"`
	ItemType     ItemType   `json:"item_type"`
	Description  string     `json:"description"`
	SerialNumber string     `json:"serial_number,omitempty"`
	AssignedDate time.Time  `json:"assigned_date"`
	Status       ItemStatus `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
