package server

import (
	"net/http"
	"testing"

	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	needdomain "github.com/heartlink/heartlink/internal/need/domain"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"missing donor", donationdomain.ErrInvalidDonor, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", donationdomain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"donation not found", donationdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"need not found", needdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"invalid donation id", donationdomain.ErrInvalidID, http.StatusBadRequest, "validation_error"},
		{"invalid donation filter", donationdomain.ErrInvalidFilter, http.StatusBadRequest, "validation_error"},
		{"invalid need filter", needdomain.ErrInvalidFilter, http.StatusBadRequest, "validation_error"},
		{"unknown category", needdomain.ErrUnknownCategory, http.StatusBadRequest, "validation_error"},
		{"invalid transition", donationdomain.ErrInvalidTransition, http.StatusConflict, "conflict"},
		{"need transition", needdomain.ErrInvalidTransition, http.StatusConflict, "conflict"},
		{"receipt not ready", donationdomain.ErrReceiptNotReady, http.StatusConflict, "conflict"},
		{"slug exists", orphanagedomain.ErrSlugExists, http.StatusConflict, "conflict"},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"unknown error", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestMapErrorDeleteNotPendingMessage(t *testing.T) {
	status, payload := mapError(donationdomain.ErrDeleteNotPending)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "can only delete pending donations", payload.Message)
}

func TestMapErrorValidationFields(t *testing.T) {
	err := &donationdomain.ValidationFailedError{
		Fields: donationdomain.FieldErrors{
			"amount":   "amount must be greater than zero",
			"currency": "currency is not supported",
		},
	}

	status, payload := mapError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	assert.Len(t, payload.Errors, 2)
	// Stable field order.
	assert.Equal(t, "amount", payload.Errors[0].Field)
	assert.Equal(t, "currency", payload.Errors[1].Field)
}

func TestClassifyErrorForLog(t *testing.T) {
	kind, code := classifyErrorForLog(donationdomain.ErrNotFound)
	assert.Equal(t, "client_error", kind)
	assert.Equal(t, "not_found", code)

	kind, code = classifyErrorForLog(assert.AnError)
	assert.Equal(t, "error", kind)
	assert.Equal(t, "internal_error", code)

	kind, code = classifyErrorForLog(nil)
	assert.Empty(t, kind)
	assert.Empty(t, code)
}
