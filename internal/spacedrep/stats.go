package spacedrep

// MaturityBreakdown counts items per maturity level, indexed by MaturityLevel.
type MaturityBreakdown [numMaturityLevels]int

// Count returns the number of items at level l.
func (b MaturityBreakdown) Count(l MaturityLevel) int {
	if l < 0 || int(l) >= len(b) {
		return 0
	}
	return b[l]
}

// Statistics summarizes the whole schedule store.
type Statistics struct {
	TotalItems    int
	ReviewedItems int

	// AverageAccuracy is the mean of per-item accuracy over reviewed items
	// only. Zero when nothing has been reviewed.
	AverageAccuracy float64

	Maturity MaturityBreakdown
}

func computeStatistics(items map[ItemID]*Schedule) Statistics {
	var (
		st  Statistics
		sum float64
	)
	for _, s := range items {
		st.TotalItems++
		if s.Maturity >= 0 && int(s.Maturity) < len(st.Maturity) {
			st.Maturity[s.Maturity]++
		}
		if acc, ok := s.Accuracy(); ok {
			st.ReviewedItems++
			sum += acc
		}
	}
	if st.ReviewedItems > 0 {
		st.AverageAccuracy = sum / float64(st.ReviewedItems)
	}
	return st
}
