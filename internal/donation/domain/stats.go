package domain

// Statistics is a pure projection over a donation set. It is recomputed on
// every read and never persisted.
type Statistics struct {
	TotalDonations     int   `json:"total_donations"`
	TotalAmountMinor   int64 `json:"total_amount_minor"`
	PendingDonations   int   `json:"pending_donations"`
	ConfirmedDonations int   `json:"confirmed_donations"`
	CompletedDonations int   `json:"completed_donations"`
	CancelledDonations int   `json:"cancelled_donations"`
	MonetaryDonations  int   `json:"monetary_donations"`
	InKindDonations    int   `json:"in_kind_donations"`
}

// ComputeStatistics aggregates a donation set. TotalAmountMinor sums the
// amounts of completed donations only.
func ComputeStatistics(donations []Donation) Statistics {
	stats := Statistics{TotalDonations: len(donations)}
	for _, d := range donations {
		switch d.Status {
		case StatusPending:
			stats.PendingDonations++
		case StatusConfirmed:
			stats.ConfirmedDonations++
		case StatusCompleted:
			stats.CompletedDonations++
			stats.TotalAmountMinor += d.AmountMinor
		case StatusCancelled:
			stats.CancelledDonations++
		}

		switch d.Type {
		case TypeMonetary:
			stats.MonetaryDonations++
		case TypeInKind:
			stats.InKindDonations++
		}
	}
	return stats
}
