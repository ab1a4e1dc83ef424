// Package domain contains the donation lifecycle model.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// DonationType distinguishes money pledges from physical goods.
type DonationType string

const (
	TypeMonetary DonationType = "MONETARY"
	TypeInKind   DonationType = "IN_KIND"
)

// DonationStatus represents donation lifecycle states.
type DonationStatus string

const (
	StatusPending   DonationStatus = "PENDING"
	StatusConfirmed DonationStatus = "CONFIRMED"
	StatusCompleted DonationStatus = "COMPLETED"
	StatusCancelled DonationStatus = "CANCELLED"
)

// RecurringFrequency is the cadence of a recurring pledge.
type RecurringFrequency string

const (
	FrequencyWeekly    RecurringFrequency = "WEEKLY"
	FrequencyMonthly   RecurringFrequency = "MONTHLY"
	FrequencyQuarterly RecurringFrequency = "QUARTERLY"
	FrequencyYearly    RecurringFrequency = "YEARLY"
)

// Donation represents a pledge from a donor to an orphanage, optionally
// against a specific need.
type Donation struct {
	ID                 snowflake.ID        `gorm:"primaryKey" json:"id"`
	DonorID            snowflake.ID        `gorm:"not null;index" json:"donor_id"`
	OrphanageID        snowflake.ID        `gorm:"not null;index" json:"orphanage_id"`
	CategoryID         snowflake.ID        `gorm:"not null;index" json:"category_id"`
	NeedID             *snowflake.ID       `gorm:"index" json:"need_id,omitempty"`
	Type               DonationType        `gorm:"type:text;not null" json:"type"`
	AmountMinor        int64               `gorm:"not null;default:0" json:"amount_minor"`
	Currency           string              `gorm:"type:text;not null;default:''" json:"currency,omitempty"`
	ItemDescription    string              `gorm:"type:text;not null;default:''" json:"item_description,omitempty"`
	Quantity           *int                `gorm:"" json:"quantity,omitempty"`
	Status             DonationStatus      `gorm:"type:text;not null;default:'PENDING';index" json:"status"`
	Note               string              `gorm:"type:text;not null;default:''" json:"note,omitempty"`
	IsAnonymous        bool                `gorm:"not null;default:false" json:"is_anonymous"`
	IsRecurring        bool                `gorm:"not null;default:false" json:"is_recurring"`
	RecurringFrequency *RecurringFrequency `gorm:"type:text" json:"recurring_frequency,omitempty"`
	Metadata           datatypes.JSONMap   `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt          time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	ConfirmedAt        *time.Time          `gorm:"" json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time          `gorm:"" json:"completed_at,omitempty"`
	CancelledAt        *time.Time          `gorm:"" json:"cancelled_at,omitempty"`
}

// TableName sets the database table name.
func (Donation) TableName() string { return "donations" }

// IsTerminal reports whether no further transitions are allowed.
func (s DonationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValidStatus reports whether status belongs to the closed set.
func IsValidStatus(status DonationStatus) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTransitionAllowed encodes the donation state machine:
// PENDING -> CONFIRMED -> COMPLETED, with CANCELLED reachable from
// PENDING or CONFIRMED.
func IsTransitionAllowed(current, target DonationStatus) bool {
	switch current {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

// ParseType decodes the external representation of a donation type.
func ParseType(raw string) (DonationType, bool) {
	switch DonationType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TypeMonetary:
		return TypeMonetary, true
	case TypeInKind:
		return TypeInKind, true
	default:
		return "", false
	}
}

// ParseStatus decodes the external representation of a donation status.
func ParseStatus(raw string) (DonationStatus, bool) {
	status := DonationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !IsValidStatus(status) {
		return "", false
	}
	return status, true
}

// ParseFrequency decodes the external representation of a recurring frequency.
func ParseFrequency(raw string) (RecurringFrequency, bool) {
	switch RecurringFrequency(strings.ToUpper(strings.TrimSpace(raw))) {
	case FrequencyWeekly:
		return FrequencyWeekly, true
	case FrequencyMonthly:
		return FrequencyMonthly, true
	case FrequencyQuarterly:
		return FrequencyQuarterly, true
	case FrequencyYearly:
		return FrequencyYearly, true
	default:
		return "", false
	}
}
