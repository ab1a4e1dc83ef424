package domain

// Statistics is a pure projection over a set of needs. It is recomputed on
// read and never persisted.
type Statistics struct {
	TotalNeeds        int `json:"total_needs"`
	ActiveNeeds       int `json:"active_needs"`
	FulfilledNeeds    int `json:"fulfilled_needs"`
	CancelledNeeds    int `json:"cancelled_needs"`
	UrgentNeeds       int `json:"urgent_needs"`
	HighPriorityNeeds int `json:"high_priority_needs"`
}

// ComputeStatistics aggregates over the given needs. Urgent and high
// priority counts only consider active needs.
func ComputeStatistics(needs []Need) Statistics {
	stats := Statistics{TotalNeeds: len(needs)}
	for _, need := range needs {
		switch need.Status {
		case NeedActive:
			stats.ActiveNeeds++
			switch need.Priority {
			case PriorityUrgent:
				stats.UrgentNeeds++
			case PriorityHigh:
				stats.HighPriorityNeeds++
			}
		case NeedFulfilled:
			stats.FulfilledNeeds++
		case NeedCancelled:
			stats.CancelledNeeds++
		}
	}
	return stats
}
