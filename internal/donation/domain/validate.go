package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/heartlink/heartlink/internal/config"
)

// FieldErrors maps a form field name to a human-readable error message.
// An empty map means the form is valid.
type FieldErrors map[string]string

// DonationForm carries raw user input for a new donation. Numeric fields
// arrive as strings exactly as typed; validation owns the parsing.
type DonationForm struct {
	OrphanageID        string
	CategoryID         string
	NeedID             string
	Type               string
	Amount             string
	Currency           string
	ItemDescription    string
	Quantity           string
	Note               string
	IsAnonymous        bool
	IsRecurring        bool
	RecurringFrequency string
}

// ValidateDonationForm checks a donation form against the lifecycle rules
// and an operator policy. Zero-valued policy fields are unconstrained, so a
// blank policy applies only the structural rules.
func ValidateDonationForm(form DonationForm, policy config.DonationPolicy) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(form.OrphanageID) == "" {
		errs["orphanageId"] = "orphanage is required"
	}
	if strings.TrimSpace(form.CategoryID) == "" {
		errs["categoryId"] = "category is required"
	}

	donationType, ok := ParseType(form.Type)
	if !ok {
		errs["type"] = "donation type must be MONETARY or IN_KIND"
		return errs
	}

	switch donationType {
	case TypeMonetary:
		amountMinor, err := ParseAmountMinor(form.Amount)
		if err != nil {
			errs["amount"] = "amount must be a valid number"
		} else if amountMinor <= 0 {
			errs["amount"] = "amount must be greater than zero"
		} else {
			if policy.MinAmountMinor > 0 && amountMinor < policy.MinAmountMinor {
				errs["amount"] = fmt.Sprintf("amount is below the minimum of %d", policy.MinAmountMinor)
			}
			if policy.MaxAmountMinor > 0 && amountMinor > policy.MaxAmountMinor {
				errs["amount"] = fmt.Sprintf("amount exceeds the maximum of %d", policy.MaxAmountMinor)
			}
		}
		if len(policy.AllowedCurrencies) > 0 && !policy.AllowsCurrency(form.Currency) {
			errs["currency"] = "currency is not supported"
		}
	case TypeInKind:
		if strings.TrimSpace(form.ItemDescription) == "" {
			errs["itemDescription"] = "item description is required"
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
		if err != nil {
			errs["quantity"] = "quantity must be a whole number"
		} else if quantity <= 0 {
			errs["quantity"] = "quantity must be greater than zero"
		} else if policy.MaxInKindQuantity > 0 && quantity > policy.MaxInKindQuantity {
			errs["quantity"] = fmt.Sprintf("quantity exceeds the maximum of %d", policy.MaxInKindQuantity)
		}
	}

	if form.IsRecurring {
		raw := strings.TrimSpace(form.RecurringFrequency)
		if raw == "" {
			errs["recurringFrequency"] = "recurring frequency is required for recurring donations"
		} else if _, ok := ParseFrequency(raw); !ok {
			errs["recurringFrequency"] = "recurring frequency is not recognized"
		} else if len(policy.RecurringFrequencies) > 0 && !policy.AllowsFrequency(raw) {
			errs["recurringFrequency"] = "recurring frequency is not allowed"
		}
	}

	return errs
}

// ParseAmountMinor parses a decimal amount string into minor units
// (two decimal places). "12.5" becomes 1250. A sign is only allowed as
// the very first character; both parts must be plain digits.
func ParseAmountMinor(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	negative := false
	switch value[0] {
	case '-':
		negative = true
		value = value[1:]
	case '+':
		value = value[1:]
	}

	whole := value
	frac := ""
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		whole = value[:idx]
		frac = value[idx+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	wholePart, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	fracPart, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if wholePart > (math.MaxInt64-fracPart)/100 {
		return 0, fmt.Errorf("amount %q is out of range", raw)
	}

	minor := wholePart*100 + fracPart
	if negative {
		minor = -minor
	}
	return minor, nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
