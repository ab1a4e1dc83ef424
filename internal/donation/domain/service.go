package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/heartlink/heartlink/pkg/db/pagination"
)

type CreateDonationRequest struct {
	Form DonationForm
}

type ListDonationRequest struct {
	Status      string
	Type        string
	NeedID      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	PageToken   string
	PageSize    int32
}

type ListDonationResponse struct {
	pagination.PageInfo
	Donations []Donation `json:"donations"`
}

type Service interface {
	Create(ctx context.Context, req CreateDonationRequest) (Donation, error)
	GetByID(ctx context.Context, id string) (Donation, error)
	Confirm(ctx context.Context, id string) (Donation, error)
	Complete(ctx context.Context, id string) (Donation, error)
	Cancel(ctx context.Context, id string) (Donation, error)
	Delete(ctx context.Context, id string) error
	ListByDonor(ctx context.Context, req ListDonationRequest) (ListDonationResponse, error)
	ListByOrphanage(ctx context.Context, orphanageID string, req ListDonationRequest) (ListDonationResponse, error)
	StatisticsForDonor(ctx context.Context) (Statistics, error)
	StatisticsForOrphanage(ctx context.Context, orphanageID string) (Statistics, error)
	Receipt(ctx context.Context, id string) (io.Reader, error)
}

// ValidationFailedError carries field-level errors across the service
// boundary without losing the per-field mapping.
type ValidationFailedError struct {
	Fields FieldErrors
}

func (e *ValidationFailedError) Error() string { return "donation form validation failed" }

var (
	ErrInvalidDonor      = errors.New("invalid_donor")
	ErrInvalidID         = errors.New("invalid_donation_id")
	ErrInvalidFilter     = errors.New("invalid_donation_filter")
	ErrNotFound          = errors.New("donation_not_found")
	ErrInvalidTransition = errors.New("invalid_donation_transition")
	ErrDeleteNotPending  = errors.New("can only delete pending donations")
	ErrReceiptNotReady   = errors.New("receipt_requires_completed_donation")
	ErrForbidden         = errors.New("donation_access_denied")
)
