package spacedrep

import (
	"fmt"
	"strings"
	"time"
)

// Ease factor bounds. New items start at DefaultEaseFactor.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0

	// LapseEasePenalty is subtracted from the ease factor on a wrong answer.
	LapseEasePenalty = 0.2
)

// Interval steps in days.
const (
	FirstIntervalDays  = 1
	SecondIntervalDays = 6
	LapseIntervalDays  = 1

	// MaxIntervalDays caps growth so due dates stay well inside the
	// range RFC 3339 can represent.
	MaxIntervalDays = 36500
)

// Maturity thresholds on IntervalDays.
const (
	YoungIntervalDays  = 6
	MatureIntervalDays = 21
)

// MaturityLevel is a coarse retention bucket used for display.
type MaturityLevel int

const (
	MaturityNew MaturityLevel = iota
	MaturityLearning
	MaturityYoung
	MaturityMature

	numMaturityLevels = 4
)

// MaturityLevels returns every level from least to most mature.
func MaturityLevels() []MaturityLevel {
	return []MaturityLevel{MaturityNew, MaturityLearning, MaturityYoung, MaturityMature}
}

func (l MaturityLevel) String() string {
	switch l {
	case MaturityNew:
		return "new"
	case MaturityLearning:
		return "learning"
	case MaturityYoung:
		return "young"
	case MaturityMature:
		return "mature"
	default:
		return fmt.Sprintf("maturity(%d)", int(l))
	}
}

// ParseMaturityLevel is the inverse of MaturityLevel.String.
func ParseMaturityLevel(s string) (MaturityLevel, error) {
	for _, l := range MaturityLevels() {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return MaturityNew, fmt.Errorf("unknown maturity level %q", s)
}

// Schedule is the scheduling state of one item.
type Schedule struct {
	EaseFactor         float64
	IntervalDays       int
	DueDate            time.Time
	TotalReviews       int
	CorrectReviews     int
	ConsecutiveCorrect int
	Maturity           MaturityLevel
	LastReviewedAt     time.Time
}

// NewSchedule returns the state of an item that has never been answered.
func NewSchedule(now time.Time) Schedule {
	return Schedule{
		EaseFactor: DefaultEaseFactor,
		DueDate:    now,
		Maturity:   MaturityNew,
	}
}

// MaturityOf classifies a schedule. Anything never reviewed is New,
// otherwise the bucket follows the current interval.
func MaturityOf(s Schedule) MaturityLevel {
	switch {
	case s.TotalReviews == 0:
		return MaturityNew
	case s.IntervalDays < YoungIntervalDays:
		return MaturityLearning
	case s.IntervalDays < MatureIntervalDays:
		return MaturityYoung
	default:
		return MaturityMature
	}
}
