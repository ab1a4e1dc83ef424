package domain

import (
	"testing"

	"github.com/heartlink/heartlink/internal/config"
	"github.com/stretchr/testify/assert"
)

func monetaryForm(amount string) DonationForm {
	return DonationForm{
		OrphanageID: "1234567890",
		CategoryID:  "9876543210",
		Type:        "MONETARY",
		Amount:      amount,
		Currency:    "USD",
	}
}

func inKindForm(description, quantity string) DonationForm {
	return DonationForm{
		OrphanageID:     "1234567890",
		CategoryID:      "9876543210",
		Type:            "IN_KIND",
		ItemDescription: description,
		Quantity:        quantity,
	}
}

func TestValidateDonationFormMonetaryAmount(t *testing.T) {
	cases := []struct {
		name      string
		amount    string
		wantError bool
	}{
		{"positive integer", "100", false},
		{"positive decimal", "12.50", false},
		{"small positive", "0.01", false},
		{"zero", "0", true},
		{"zero decimal", "0.00", true},
		{"negative", "-5", true},
		{"not a number", "abc", true},
		{"empty", "", true},
		{"trailing garbage", "10x", true},
		{"double negative", "--5", true},
		{"signed fraction", "1.-5", true},
		{"plus in fraction", "3.+7", true},
		{"dangling sign", "12.-", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateDonationForm(monetaryForm(tc.amount), config.DonationPolicy{})
			if tc.wantError {
				assert.Contains(t, errs, "amount")
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateDonationFormInKind(t *testing.T) {
	cases := []struct {
		name        string
		description string
		quantity    string
		wantField   string
	}{
		{"valid", "50kg rice", "50", ""},
		{"blank description", "", "50", "itemDescription"},
		{"whitespace description", "   ", "50", "itemDescription"},
		{"zero quantity", "50kg rice", "0", "quantity"},
		{"negative quantity", "50kg rice", "-1", "quantity"},
		{"non numeric quantity", "50kg rice", "many", "quantity"},
		{"decimal quantity", "50kg rice", "1.5", "quantity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateDonationForm(inKindForm(tc.description, tc.quantity), config.DonationPolicy{})
			if tc.wantField == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tc.wantField)
			}
		})
	}
}

func TestValidateDonationFormInKindIgnoresAmount(t *testing.T) {
	form := inKindForm("50kg rice", "50")
	form.Amount = "0"

	errs := ValidateDonationForm(form, config.DonationPolicy{})
	assert.Empty(t, errs)
}

func TestValidateDonationFormRecurringFrequency(t *testing.T) {
	form := monetaryForm("100")
	form.IsRecurring = true

	errs := ValidateDonationForm(form, config.DonationPolicy{})
	assert.Contains(t, errs, "recurringFrequency")

	form.RecurringFrequency = "MONTHLY"
	errs = ValidateDonationForm(form, config.DonationPolicy{})
	assert.Empty(t, errs)

	form.RecurringFrequency = "FORTNIGHTLY"
	errs = ValidateDonationForm(form, config.DonationPolicy{})
	assert.Contains(t, errs, "recurringFrequency")
}

func TestValidateDonationFormRequiredIDs(t *testing.T) {
	form := monetaryForm("100")
	form.OrphanageID = ""
	form.CategoryID = " "

	errs := ValidateDonationForm(form, config.DonationPolicy{})
	assert.Contains(t, errs, "orphanageId")
	assert.Contains(t, errs, "categoryId")
}

func TestValidateDonationFormUnknownType(t *testing.T) {
	form := monetaryForm("100")
	form.Type = "BARTER"

	errs := ValidateDonationForm(form, config.DonationPolicy{})
	assert.Contains(t, errs, "type")
}

func TestValidateDonationFormPolicyBounds(t *testing.T) {
	policy := config.DonationPolicy{
		AllowedCurrencies: []string{"USD"},
		MinAmountMinor:    100,
		MaxAmountMinor:    10_000,
		MaxInKindQuantity: 20,
	}

	errs := ValidateDonationForm(monetaryForm("0.50"), policy)
	assert.Contains(t, errs, "amount")

	errs = ValidateDonationForm(monetaryForm("500"), policy)
	assert.Contains(t, errs, "amount")

	errs = ValidateDonationForm(monetaryForm("50"), policy)
	assert.Empty(t, errs)

	form := monetaryForm("50")
	form.Currency = "XYZ"
	errs = ValidateDonationForm(form, policy)
	assert.Contains(t, errs, "currency")

	errs = ValidateDonationForm(inKindForm("blankets", "25"), policy)
	assert.Contains(t, errs, "quantity")
}

func TestParseAmountMinor(t *testing.T) {
	cases := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"12.5", 1250, false},
		{"12.50", 1250, false},
		{"0.01", 1, false},
		{"100", 10000, false},
		{"-3.25", -325, false},
		{"+3.25", 325, false},
		{".5", 50, false},
		{"12.505", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"--5", 0, true},
		{"-+5", 0, true},
		{"1.-5", 0, true},
		{"3.+7", 0, true},
		{"12.-", 0, true},
		{"1-2", 0, true},
		{"1e3", 0, true},
		{"1 2", 0, true},
		{"99999999999999999999", 0, true},
		{"92233720368547758.08", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseAmountMinor(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
