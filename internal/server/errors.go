package server

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	needdomain "github.com/heartlink/heartlink/internal/need/domain"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRateLimited    = errors.New("rate_limited")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// fieldErrorList flattens a field error map in stable field order.
func fieldErrorList(fields map[string]string) []ValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]ValidationError, 0, len(names))
	for _, name := range names {
		list = append(list, ValidationError{
			Field:   name,
			Code:    "invalid_" + name,
			Message: fields[name],
		})
	}
	return list
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var donationFormErr *donationdomain.ValidationFailedError
	if errors.As(err, &donationFormErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  fieldErrorList(donationFormErr.Fields),
		}
	}
	var needFormErr *needdomain.ValidationFailedError
	if errors.As(err, &needFormErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  fieldErrorList(needFormErr.Fields),
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, donationdomain.ErrInvalidDonor),
		errors.Is(err, needdomain.ErrInvalidOrphanage):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, donationdomain.ErrForbidden),
		errors.Is(err, needdomain.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, donationdomain.ErrDeleteNotPending):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "can only delete pending donations",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, donationdomain.ErrInvalidTransition),
		errors.Is(err, needdomain.ErrInvalidTransition),
		errors.Is(err, donationdomain.ErrReceiptNotReady),
		errors.Is(err, orphanagedomain.ErrSlugExists),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "request",
					Code:    err.Error(),
					Message: "invalid value",
				},
			},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, donationdomain.ErrInvalidID),
		errors.Is(err, donationdomain.ErrInvalidFilter),
		errors.Is(err, needdomain.ErrInvalidID),
		errors.Is(err, needdomain.ErrInvalidFilter),
		errors.Is(err, needdomain.ErrUnknownCategory),
		errors.Is(err, categorydomain.ErrInvalidID),
		errors.Is(err, orphanagedomain.ErrInvalidID),
		errors.Is(err, orphanagedomain.ErrInvalidName):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, donationdomain.ErrNotFound),
		errors.Is(err, needdomain.ErrNotFound),
		errors.Is(err, categorydomain.ErrNotFound),
		errors.Is(err, orphanagedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog buckets handler errors for the request logger.
func classifyErrorForLog(err error) (kind, code string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "error", payload.Type
	case status >= http.StatusBadRequest:
		return "client_error", payload.Type
	default:
		return "", ""
	}
}
