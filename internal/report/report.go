// Package report renders scheduler state for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/jazzdrill/jazzdrill/internal/spacedrep"
	"github.com/jazzdrill/jazzdrill/internal/store"
	"github.com/jazzdrill/jazzdrill/internal/ui/components"
	"github.com/jazzdrill/jazzdrill/internal/ui/theme"
)

const (
	itemWidth = 34
	barWidth  = 44
)

// MaturityStyle returns the display style for a maturity level.
func MaturityStyle(l spacedrep.MaturityLevel) lipgloss.Style {
	switch l {
	case spacedrep.MaturityLearning:
		return theme.MaturityLearning
	case spacedrep.MaturityYoung:
		return theme.MaturityYoung
	case spacedrep.MaturityMature:
		return theme.MaturityMature
	default:
		return theme.MaturityNew
	}
}

// Recorded renders the schedule produced by one answer.
func Recorded(id spacedrep.ItemID, correct bool, s spacedrep.Schedule, now time.Time) string {
	var b strings.Builder

	if correct {
		b.WriteString(theme.Correct.Render("✓ correct"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ missed"))
	}
	b.WriteString("  ")
	b.WriteString(theme.Title.Render(id.String()))
	b.WriteByte('\n')

	acc, _ := s.Accuracy()
	fmt.Fprintf(&b, "%s %s\n", theme.Heading.Render("next review"), theme.Body.Render(dueLabel(s.DueDate, now)))
	fmt.Fprintf(&b, "%s %s  %s %.2f  %s %s\n",
		theme.Heading.Render("interval"), theme.Body.Render(days(s.IntervalDays)),
		theme.Heading.Render("ease"), s.EaseFactor,
		theme.Heading.Render("maturity"), MaturityStyle(s.Maturity).Render(s.Maturity.String()),
	)
	fmt.Fprintf(&b, "%s %d/%d (%d%%)  %s %d",
		theme.Heading.Render("answers"), s.CorrectReviews, s.TotalReviews, int(acc*100+0.5),
		theme.Heading.Render("streak"), s.ConsecutiveCorrect,
	)
	return b.String()
}

// Due renders the due list. total is the number of due items before any
// limit was applied.
func Due(items []spacedrep.DueItem, asOf time.Time, total int) string {
	if len(items) == 0 {
		return theme.Hint.Render("Nothing due. Come back later.")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s  %-14s  %8s  %5s  %s", itemWidth, "ITEM", "DUE", "INTERVAL", "EASE", "MATURITY")
	b.WriteString(theme.Heading.Render(header))
	b.WriteByte('\n')
	b.WriteString(theme.Subtitle.Render(strings.Repeat("─", lipgloss.Width(header))))
	b.WriteByte('\n')

	for _, it := range items {
		s := it.Schedule
		label := truncate(it.ID.String(), itemWidth)

		due := fmt.Sprintf("%-14s", dueLabel(s.DueDate, asOf))
		dueStyle := theme.Body
		if s.OverdueDays(asOf) >= 1 {
			dueStyle = theme.Overdue
		}

		fmt.Fprintf(&b, "%s  %s  %8s  %5.2f  %s\n",
			theme.Body.Render(fmt.Sprintf("%-*s", itemWidth, label)),
			dueStyle.Render(due),
			days(s.IntervalDays),
			s.EaseFactor,
			MaturityStyle(s.Maturity).Render(s.Maturity.String()),
		)
	}

	summary := fmt.Sprintf("%d due", total)
	if total > len(items) {
		summary = fmt.Sprintf("showing %d of %d due", len(items), total)
	}
	b.WriteByte('\n')
	b.WriteString(theme.Subtitle.Render(summary))
	return b.String()
}

// Stats renders the statistics card. dueByMode may be nil.
func Stats(st spacedrep.Statistics, dueByMode map[spacedrep.Mode]int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Practice summary"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d   %s %d\n",
		theme.Heading.Render("items"), st.TotalItems,
		theme.Heading.Render("reviewed"), st.ReviewedItems,
	)

	if st.ReviewedItems > 0 {
		acc := components.NewProgressBar("accuracy", st.AverageAccuracy, true, barWidth)
		acc.LabelWidth = 8
		b.WriteString(acc.View())
	} else {
		b.WriteString(theme.Hint.Render("No answers recorded yet."))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("maturity"))
	b.WriteByte('\n')
	for _, l := range spacedrep.MaturityLevels() {
		n := st.Maturity.Count(l)
		var share float64
		if st.TotalItems > 0 {
			share = float64(n) / float64(st.TotalItems)
		}
		bar := components.NewProgressBar(l.String(), share, false, barWidth)
		bar.LabelWidth = 8
		bar.Fill = lipgloss.NewStyle().Background(MaturityStyle(l).GetForeground())
		fmt.Fprintf(&b, "%s  %d\n", bar.View(), n)
	}

	if dueByMode != nil {
		b.WriteByte('\n')
		b.WriteString(theme.Heading.Render("due now"))
		b.WriteByte('\n')
		var parts []string
		for _, m := range spacedrep.Modes() {
			parts = append(parts, fmt.Sprintf("%s %d", m, dueByMode[m]))
		}
		b.WriteString(theme.Body.Render(strings.Join(parts, "  ")))
	}

	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}

// History renders review events, newest first.
func History(events []store.ReviewEventRecord, now time.Time) string {
	if len(events) == 0 {
		return theme.Hint.Render("No reviews recorded yet.")
	}

	var b strings.Builder
	for _, e := range events {
		mark := theme.Correct.Render("✓")
		if !e.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		id := spacedrep.ItemID{
			Mode:    spacedrep.Mode(e.Mode),
			Topic:   e.Topic,
			Key:     e.Key,
			Variant: e.Variant,
		}
		fmt.Fprintf(&b, "%s %s  %s  %s  %s\n",
			mark,
			theme.Body.Render(fmt.Sprintf("%-*s", itemWidth, truncate(id.String(), itemWidth))),
			theme.Subtitle.Render(fmt.Sprintf("%6.1fs", float64(e.ResponseMs)/1000)),
			theme.Subtitle.Render(fmt.Sprintf("→ %s", days(e.IntervalDays))),
			theme.Hint.Render(humanize.RelTime(e.Timestamp, now, "ago", "from now")),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Warning renders a non-fatal problem for stderr.
func Warning(msg string) string {
	return theme.Warning.Render("warning: ") + msg
}

func dueLabel(due, now time.Time) string {
	if !now.Before(due) {
		if now.Sub(due) < time.Minute {
			return "now"
		}
		return "overdue " + relSpan(due, now)
	}
	if due.Sub(now) < time.Minute {
		return "in a moment"
	}
	return "in " + relSpan(now, due)
}

// relSpan renders the distance between a and b without a direction label.
func relSpan(a, b time.Time) string {
	return strings.TrimSpace(humanize.RelTime(a, b, "", ""))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
