package domain

import (
	"context"
	"errors"
)

type CreateNeedRequest struct {
	Form NeedForm
}

// UpdateNeedRequest carries a partial update. Nil fields are untouched.
// Status is deliberately absent, it only moves through MarkFulfilled and
// Cancel.
type UpdateNeedRequest struct {
	ItemName    *string
	Description *string
	Quantity    *int
	Priority    *NeedPriority
	CategoryID  *string
}

type ListNeedRequest struct {
	Status   string
	Priority string
}

type Service interface {
	Create(ctx context.Context, req CreateNeedRequest) (Need, error)
	GetByID(ctx context.Context, id string) (Need, error)
	Update(ctx context.Context, id string, req UpdateNeedRequest) (Need, error)
	MarkFulfilled(ctx context.Context, id string) (Need, error)
	Cancel(ctx context.Context, id string) (Need, error)
	Delete(ctx context.Context, id string) error
	ListByOrphanage(ctx context.Context, orphanageID string, req ListNeedRequest) ([]Need, error)
	Statistics(ctx context.Context, orphanageID string) (Statistics, error)
}

// ValidationFailedError carries field-level errors across the service
// boundary without losing the per-field mapping.
type ValidationFailedError struct {
	Fields FieldErrors
}

func (e *ValidationFailedError) Error() string { return "need form validation failed" }

var (
	ErrInvalidOrphanage  = errors.New("invalid_orphanage")
	ErrInvalidID         = errors.New("invalid_need_id")
	ErrInvalidFilter     = errors.New("invalid_need_filter")
	ErrNotFound          = errors.New("need_not_found")
	ErrUnknownCategory   = errors.New("unknown_need_category")
	ErrInvalidTransition = errors.New("invalid_need_transition")
	ErrForbidden         = errors.New("need_access_denied")
)
