package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNeedForm(t *testing.T) {
	cases := []struct {
		name       string
		form       NeedForm
		wantFields []string
	}{
		{
			name: "valid",
			form: NeedForm{CategoryID: "123", ItemName: "Rice", Quantity: "10"},
		},
		{
			name:       "blank category only",
			form:       NeedForm{CategoryID: "", ItemName: "Rice", Quantity: "10"},
			wantFields: []string{"categoryId"},
		},
		{
			name:       "blank item name",
			form:       NeedForm{CategoryID: "123", ItemName: "  ", Quantity: "10"},
			wantFields: []string{"itemName"},
		},
		{
			name:       "zero quantity",
			form:       NeedForm{CategoryID: "123", ItemName: "Rice", Quantity: "0"},
			wantFields: []string{"quantity"},
		},
		{
			name:       "non numeric quantity",
			form:       NeedForm{CategoryID: "123", ItemName: "Rice", Quantity: "lots"},
			wantFields: []string{"quantity"},
		},
		{
			name:       "bad priority",
			form:       NeedForm{CategoryID: "123", ItemName: "Rice", Quantity: "10", Priority: "EXTREME"},
			wantFields: []string{"priority"},
		},
		{
			name: "valid priority",
			form: NeedForm{CategoryID: "123", ItemName: "Rice", Quantity: "10", Priority: "urgent"},
		},
		{
			name:       "everything wrong",
			form:       NeedForm{},
			wantFields: []string{"categoryId", "itemName", "quantity"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateNeedForm(tc.form)
			assert.Len(t, errs, len(tc.wantFields))
			for _, field := range tc.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestComputeNeedsStatistics(t *testing.T) {
	needs := []Need{
		{Status: NeedActive, Priority: PriorityUrgent},
		{Status: NeedActive, Priority: PriorityHigh},
		{Status: NeedActive, Priority: PriorityLow},
		{Status: NeedFulfilled, Priority: PriorityUrgent},
		{Status: NeedCancelled, Priority: PriorityHigh},
	}

	stats := ComputeStatistics(needs)

	assert.Equal(t, 5, stats.TotalNeeds)
	assert.Equal(t, 3, stats.ActiveNeeds)
	assert.Equal(t, 1, stats.FulfilledNeeds)
	assert.Equal(t, 1, stats.CancelledNeeds)
	// Urgent and high counts exclude terminal needs.
	assert.Equal(t, 1, stats.UrgentNeeds)
	assert.Equal(t, 1, stats.HighPriorityNeeds)
}

func TestNeedRemaining(t *testing.T) {
	assert.Equal(t, 40, Need{Quantity: 50, QuantityFulfilled: 10}.Remaining())
	assert.Equal(t, 0, Need{Quantity: 50, QuantityFulfilled: 50}.Remaining())
	assert.Equal(t, 0, Need{Quantity: 50, QuantityFulfilled: 60}.Remaining())
}
