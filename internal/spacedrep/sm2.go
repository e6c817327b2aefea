package spacedrep

import (
	"math"
	"time"
)

// Response-time bucket edges. Each edge is the inclusive lower bound of
// the next, slower bucket.
const (
	PerfectUnder = 2 * time.Second
	GoodUnder    = 5 * time.Second
	OkayUnder    = 10 * time.Second
	HardUnder    = 20 * time.Second
)

// Quality scores assigned to correct answers by response time.
const (
	QualityPerfect  = 5.0
	QualityGood     = 4.0
	QualityOkay     = 3.0
	QualityHard     = 2.5
	QualityVeryHard = 2.0
)

// QualityScore maps a correct answer's response time to an SM-2 style
// quality between 2.0 and 5.0. Faster answers count as more confident.
func QualityScore(responseSeconds float64) float64 {
	switch {
	case responseSeconds < PerfectUnder.Seconds():
		return QualityPerfect
	case responseSeconds < GoodUnder.Seconds():
		return QualityGood
	case responseSeconds < OkayUnder.Seconds():
		return QualityOkay
	case responseSeconds < HardUnder.Seconds():
		return QualityHard
	default:
		return QualityVeryHard
	}
}

// NextEaseFactor applies the SM-2 ease update for a correct answer of the
// given quality and clamps the result to [MinEaseFactor, MaxEaseFactor].
func NextEaseFactor(ease, quality float64) float64 {
	miss := 5 - quality
	return clamp(ease+(0.1-miss*(0.08+miss*0.02)), MinEaseFactor, MaxEaseFactor)
}

// LapseEaseFactor applies the penalty for a wrong answer.
func LapseEaseFactor(ease float64) float64 {
	return clamp(ease-LapseEasePenalty, MinEaseFactor, MaxEaseFactor)
}

// NextIntervalDays returns the interval for the n-th consecutive correct
// answer (1-indexed), given the previous interval and the updated ease.
// The result stays within [FirstIntervalDays, MaxIntervalDays].
func NextIntervalDays(repetition, prevInterval int, ease float64) int {
	switch repetition {
	case 1:
		return FirstIntervalDays
	case 2:
		return SecondIntervalDays
	}
	days := clamp(math.Round(float64(prevInterval)*ease), FirstIntervalDays, MaxIntervalDays)
	return int(days)
}

// applyOutcome computes everything about the next schedule except the due
// date, which depends on the scheduler's day granularity.
func applyOutcome(s Schedule, correct bool, responseSeconds float64, now time.Time) (Schedule, float64) {
	var quality float64

	s.TotalReviews++
	s.LastReviewedAt = now

	if correct {
		quality = QualityScore(responseSeconds)
		s.CorrectReviews++
		s.ConsecutiveCorrect++
		s.EaseFactor = NextEaseFactor(s.EaseFactor, quality)
		s.IntervalDays = NextIntervalDays(s.ConsecutiveCorrect, s.IntervalDays, s.EaseFactor)
	} else {
		s.ConsecutiveCorrect = 0
		s.EaseFactor = LapseEaseFactor(s.EaseFactor)
		s.IntervalDays = LapseIntervalDays
	}

	s.Maturity = MaturityOf(s)
	return s, quality
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
