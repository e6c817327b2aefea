package spacedrep

import (
	"math"
	"testing"
	"time"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQualityScore_Buckets(t *testing.T) {
	tests := []struct {
		seconds float64
		want    float64
	}{
		{0, 5.0},
		{1.0, 5.0},
		{1.999, 5.0},
		{2.0, 4.0}, // lower bound inclusive
		{4.99, 4.0},
		{5.0, 3.0},
		{9.5, 3.0},
		{10.0, 2.5},
		{19.99, 2.5},
		{20.0, 2.0},
		{600, 2.0},
		{1e300, 2.0},
	}
	for _, tt := range tests {
		if got := QualityScore(tt.seconds); got != tt.want {
			t.Errorf("QualityScore(%v) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestNextEaseFactor(t *testing.T) {
	tests := []struct {
		ease    float64
		quality float64
		want    float64
	}{
		{2.5, 5.0, 2.6},
		{2.5, 4.0, 2.5},
		{2.6, 3.0, 2.46},
		{2.5, 2.5, 2.275},
		{2.5, 2.0, 2.18},
		{2.95, 5.0, 3.0}, // clamped at ceiling
		{1.35, 2.0, 1.3}, // clamped at floor
	}
	for _, tt := range tests {
		if got := NextEaseFactor(tt.ease, tt.quality); !approxEqual(got, tt.want) {
			t.Errorf("NextEaseFactor(%v, %v) = %v, want %v", tt.ease, tt.quality, got, tt.want)
		}
	}
}

func TestLapseEaseFactor(t *testing.T) {
	if got := LapseEaseFactor(2.46); !approxEqual(got, 2.26) {
		t.Errorf("LapseEaseFactor(2.46) = %v, want 2.26", got)
	}
	if got := LapseEaseFactor(1.4); got != MinEaseFactor {
		t.Errorf("LapseEaseFactor(1.4) = %v, want %v", got, MinEaseFactor)
	}
}

func TestNextIntervalDays(t *testing.T) {
	tests := []struct {
		rep  int
		prev int
		ease float64
		want int
	}{
		{1, 0, 2.6, 1},
		{1, 40, 1.3, 1},
		{2, 1, 1.3, 6}, // fixed second step regardless of ease
		{2, 1, 3.0, 6},
		{3, 6, 2.46, 15},
		{4, 15, 2.5, 38},
		{3, 0, 1.3, 1}, // never below one day
		{5, 20000, 3.0, MaxIntervalDays},
		{9, MaxIntervalDays, 3.0, MaxIntervalDays},
		{60, math.MaxInt / 2, 3.0, MaxIntervalDays},
	}
	for _, tt := range tests {
		if got := NextIntervalDays(tt.rep, tt.prev, tt.ease); got != tt.want {
			t.Errorf("NextIntervalDays(%d, %d, %v) = %d, want %d", tt.rep, tt.prev, tt.ease, got, tt.want)
		}
	}
}

func TestApplyOutcome_Correct(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s, q := applyOutcome(NewSchedule(now), true, 1.0, now)

	if q != QualityPerfect {
		t.Errorf("quality = %v, want %v", q, QualityPerfect)
	}
	if s.EaseFactor <= DefaultEaseFactor {
		t.Errorf("EaseFactor = %v, want > %v", s.EaseFactor, DefaultEaseFactor)
	}
	if s.IntervalDays != 1 || s.ConsecutiveCorrect != 1 {
		t.Errorf("interval/streak = %d/%d, want 1/1", s.IntervalDays, s.ConsecutiveCorrect)
	}
	if s.TotalReviews != 1 || s.CorrectReviews != 1 {
		t.Errorf("counters = %d/%d, want 1/1", s.TotalReviews, s.CorrectReviews)
	}
	if s.Maturity != MaturityLearning {
		t.Errorf("Maturity = %v, want learning", s.Maturity)
	}
	if !s.LastReviewedAt.Equal(now) {
		t.Errorf("LastReviewedAt = %v, want %v", s.LastReviewedAt, now)
	}
}

func TestApplyOutcome_IncorrectFromMature(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mature := Schedule{
		EaseFactor:         2.8,
		IntervalDays:       45,
		TotalReviews:       6,
		CorrectReviews:     6,
		ConsecutiveCorrect: 6,
		Maturity:           MaturityMature,
	}
	s, q := applyOutcome(mature, false, 3.0, now)

	if q != 0 {
		t.Errorf("quality = %v, want 0 for a wrong answer", q)
	}
	if s.ConsecutiveCorrect != 0 {
		t.Errorf("ConsecutiveCorrect = %d, want 0", s.ConsecutiveCorrect)
	}
	if s.IntervalDays != LapseIntervalDays {
		t.Errorf("IntervalDays = %d, want %d", s.IntervalDays, LapseIntervalDays)
	}
	if !approxEqual(s.EaseFactor, 2.6) {
		t.Errorf("EaseFactor = %v, want 2.6", s.EaseFactor)
	}
	if s.TotalReviews != 7 || s.CorrectReviews != 6 {
		t.Errorf("counters = %d/%d, want 7/6", s.TotalReviews, s.CorrectReviews)
	}
	if s.Maturity != MaturityLearning {
		t.Errorf("Maturity = %v, want learning", s.Maturity)
	}
}
