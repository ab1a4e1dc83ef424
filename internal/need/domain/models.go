// Package domain contains the orphanage need model.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// NeedPriority ranks how urgently a need should be met.
type NeedPriority string

const (
	PriorityLow    NeedPriority = "LOW"
	PriorityMedium NeedPriority = "MEDIUM"
	PriorityHigh   NeedPriority = "HIGH"
	PriorityUrgent NeedPriority = "URGENT"
)

// NeedStatus represents the need lifecycle. Fulfilled and cancelled are
// terminal.
type NeedStatus string

const (
	NeedActive    NeedStatus = "active"
	NeedFulfilled NeedStatus = "fulfilled"
	NeedCancelled NeedStatus = "cancelled"
)

// Need is a published request for goods or funds from an orphanage.
type Need struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	OrphanageID       snowflake.ID `gorm:"not null;index" json:"orphanage_id"`
	CategoryID        snowflake.ID `gorm:"not null;index" json:"category_id"`
	ItemName          string       `gorm:"type:text;not null" json:"item_name"`
	Description       string       `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	Quantity          int          `gorm:"not null;default:0" json:"quantity"`
	QuantityFulfilled int          `gorm:"not null;default:0" json:"quantity_fulfilled"`
	Priority          NeedPriority `gorm:"type:text;not null;default:'MEDIUM'" json:"priority"`
	Status            NeedStatus   `gorm:"type:text;not null;default:'active';index" json:"status"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	FulfilledAt       *time.Time   `gorm:"" json:"fulfilled_at,omitempty"`
	CancelledAt       *time.Time   `gorm:"" json:"cancelled_at,omitempty"`
}

// TableName sets the database table name.
func (Need) TableName() string { return "needs" }

// IsTerminal reports whether the need accepts no further changes.
func (s NeedStatus) IsTerminal() bool {
	return s == NeedFulfilled || s == NeedCancelled
}

// Remaining is the quantity still outstanding, never negative.
func (n Need) Remaining() int {
	remaining := n.Quantity - n.QuantityFulfilled
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ParsePriority maps a raw token onto a NeedPriority.
func ParsePriority(raw string) (NeedPriority, bool) {
	switch NeedPriority(strings.ToUpper(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityUrgent:
		return PriorityUrgent, true
	default:
		return "", false
	}
}

// ParseStatus maps a raw token onto a NeedStatus.
func ParseStatus(raw string) (NeedStatus, bool) {
	switch NeedStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case NeedActive:
		return NeedActive, true
	case NeedFulfilled:
		return NeedFulfilled, true
	case NeedCancelled:
		return NeedCancelled, true
	default:
		return "", false
	}
}
