package tui

import (
	"fmt"
	"time"
)

// FormatInterval formats an interval in days as "Nd", "N.Nmo" or "N.Ny".
func FormatInterval(days int) string {
	switch {
	case days >= 365:
		return fmt.Sprintf("%.1fy", float64(days)/365)
	case days >= 60:
		return fmt.Sprintf("%.1fmo", float64(days)/30)
	default:
		return fmt.Sprintf("%dd", days)
	}
}

// FormatDue describes when a review lands relative to now: "due now",
// "due in 3d", "2d overdue".
func FormatDue(next, now time.Time) string {
	d := next.Sub(now)
	switch {
	case d <= 0 && d > -time.Minute:
		return "due now"
	case d < 0:
		return fmt.Sprintf("%s overdue", formatSpan(-d))
	default:
		return fmt.Sprintf("due in %s", formatSpan(d))
	}
}

// FormatAccuracy formats a ratio in [0, 1] as a whole percentage.
func FormatAccuracy(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

// FormatDuration formats a session length to "Xm Ys" or "Xs".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	minutes := total / 60
	seconds := total % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// formatSpan renders a duration at the coarsest useful unit.
func formatSpan(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		m := int(d.Minutes())
		if m < 1 {
			m = 1
		}
		return fmt.Sprintf("%dm", m)
	}
}
