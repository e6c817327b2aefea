package spacedrep

import "time"

// IsDue returns true if the item is due at asOf (at or past the due date).
func (s Schedule) IsDue(asOf time.Time) bool {
	return !asOf.Before(s.DueDate)
}

// OverdueDays returns how many days past due the item is. Returns 0 if not yet due.
func (s Schedule) OverdueDays(asOf time.Time) float64 {
	if asOf.Before(s.DueDate) {
		return 0
	}
	return asOf.Sub(s.DueDate).Hours() / 24.0
}

// Accuracy returns correct/total answers. ok is false for an item that
// has never been answered.
func (s Schedule) Accuracy() (acc float64, ok bool) {
	if s.TotalReviews == 0 {
		return 0, false
	}
	return float64(s.CorrectReviews) / float64(s.TotalReviews), true
}
