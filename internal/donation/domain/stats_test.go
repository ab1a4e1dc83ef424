package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Equal(t, Statistics{}, stats)
}

func TestComputeStatistics(t *testing.T) {
	donations := []Donation{
		{Type: TypeMonetary, Status: StatusPending, AmountMinor: 1000},
		{Type: TypeMonetary, Status: StatusCompleted, AmountMinor: 2500},
		{Type: TypeMonetary, Status: StatusCompleted, AmountMinor: 500},
		{Type: TypeInKind, Status: StatusConfirmed},
		{Type: TypeInKind, Status: StatusCancelled},
	}

	stats := ComputeStatistics(donations)

	assert.Equal(t, 5, stats.TotalDonations)
	assert.Equal(t, 1, stats.PendingDonations)
	assert.Equal(t, 1, stats.ConfirmedDonations)
	assert.Equal(t, 2, stats.CompletedDonations)
	assert.Equal(t, 1, stats.CancelledDonations)
	assert.Equal(t, 3, stats.MonetaryDonations)
	assert.Equal(t, 2, stats.InKindDonations)
	assert.Equal(t, int64(3000), stats.TotalAmountMinor)
}

func TestComputeStatisticsCountsAddUp(t *testing.T) {
	donations := []Donation{
		{Type: TypeMonetary, Status: StatusPending, AmountMinor: 100},
		{Type: TypeMonetary, Status: StatusCompleted, AmountMinor: 200},
		{Type: TypeInKind, Status: StatusPending},
		{Type: TypeInKind, Status: StatusCompleted},
	}

	stats := ComputeStatistics(donations)

	assert.LessOrEqual(t, stats.PendingDonations+stats.CompletedDonations, stats.TotalDonations)
	assert.Equal(t, len(donations), stats.TotalDonations)

	var wantAmount int64
	for _, d := range donations {
		if d.Status == StatusCompleted {
			wantAmount += d.AmountMinor
		}
	}
	assert.Equal(t, wantAmount, stats.TotalAmountMinor)
}
