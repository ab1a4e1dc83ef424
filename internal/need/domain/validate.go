package domain

import (
	"strconv"
	"strings"
)

// FieldErrors maps a form field to a human-readable message. An empty map
// means the form is valid.
type FieldErrors map[string]string

// NeedForm carries raw user input. Numeric fields arrive as strings and are
// parsed here, not by the caller.
type NeedForm struct {
	CategoryID  string
	ItemName    string
	Quantity    string
	Priority    string
	Description string
}

// ValidateNeedForm checks a need form. It never touches I/O.
func ValidateNeedForm(form NeedForm) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(form.CategoryID) == "" {
		errs["categoryId"] = "category is required"
	}
	if strings.TrimSpace(form.ItemName) == "" {
		errs["itemName"] = "item name is required"
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if err != nil {
		errs["quantity"] = "quantity must be a whole number"
	} else if quantity <= 0 {
		errs["quantity"] = "quantity must be greater than zero"
	}

	if raw := strings.TrimSpace(form.Priority); raw != "" {
		if _, ok := ParsePriority(raw); !ok {
			errs["priority"] = "priority must be one of LOW, MEDIUM, HIGH, URGENT"
		}
	}

	return errs
}
