package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/progress"

	"github.com/fyrsmithlabs/recall/internal/achievement"
	"github.com/fyrsmithlabs/recall/internal/stats"
	"github.com/fyrsmithlabs/recall/internal/streak"
)

const (
	sparklineWidth  = 30
	sparklineHeight = 3
	maxTagRows      = 8
	streakStripDays = 14
)

// createSparkline creates a sparkline chart from historical data
func createSparkline(data []float64) string {
	if len(data) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, "no data"))
	}

	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range data {
		spark.Push(v)
	}

	return sparklineStyle.Render(spark.View())
}

// dueBadge summarizes the due pile.
func dueBadge(due int) string {
	if due == 0 {
		return goodStyle.Render("✓ all caught up")
	}
	return warnStyle.Render(fmt.Sprintf("⚠ %d due", due))
}

// RenderStats renders the one-shot statistics screen.
func RenderStats(snap stats.Snapshot, tags []stats.TagCount, volume []float64) string {
	var content string
	content += headerStyle.Render(" recall stats ") + "\n"

	content += "\n" + sectionStyle.Render("┃ Collection") + "\n"
	content += labelStyle.Render("  Cards: ") +
		valueStyle.Render(fmt.Sprintf("%d", snap.TotalCards)) +
		"   " + dueBadge(snap.DueCards) + "\n"
	content += labelStyle.Render("  Tiers: ") +
		dimStyle.Render("new=") + valueStyle.Render(fmt.Sprintf("%d", snap.NewCards)) +
		dimStyle.Render("  learning=") + valueStyle.Render(fmt.Sprintf("%d", snap.LearningCards)) +
		dimStyle.Render("  young=") + valueStyle.Render(fmt.Sprintf("%d", snap.YoungCards)) +
		dimStyle.Render("  mature=") + valueStyle.Render(fmt.Sprintf("%d", snap.MatureCards)) + "\n"
	content += labelStyle.Render("  Avg easiness: ") +
		valueStyle.Render(fmt.Sprintf("%.2f", snap.AverageEasiness)) + "\n"

	content += "\n" + sectionStyle.Render("┃ Reviews") + "\n"
	content += labelStyle.Render("  Total: ") +
		valueStyle.Render(fmt.Sprintf("%d", snap.TotalReviews)) +
		labelStyle.Render("   Accuracy: ") +
		valueStyle.Render(FormatAccuracy(snap.Accuracy())) + "\n"
	content += labelStyle.Render("  Sessions: ") +
		valueStyle.Render(fmt.Sprintf("%d", snap.TotalSessions)) +
		" " + dimStyle.Render(fmt.Sprintf("(%d completed)", snap.CompletedSessions)) + "\n"
	content += labelStyle.Render("  Streak: ") +
		valueStyle.Render(fmt.Sprintf("%dd", snap.CurrentStreak)) +
		" " + dimStyle.Render(fmt.Sprintf("(best %dd)", snap.LongestStreak)) + "\n"

	content += "\n" + sectionStyle.Render("┃ Activity") + "\n"
	content += labelStyle.Render(fmt.Sprintf("  Last %d days:", len(volume))) + "\n"
	content += createSparkline(volume) + "\n"

	if len(tags) > 0 {
		content += "\n" + sectionStyle.Render("┃ Tags") + "\n"
		rows := tags
		if len(rows) > maxTagRows {
			rows = rows[:maxTagRows]
		}
		for _, t := range rows {
			content += labelStyle.Render(fmt.Sprintf("  %-16s", t.Tag)) +
				valueStyle.Render(fmt.Sprintf("%d", t.Count)) + "\n"
		}
		if len(tags) > maxTagRows {
			content += dimStyle.Render(fmt.Sprintf("  … and %d more", len(tags)-maxTagRows)) + "\n"
		}
	}

	return containerStyle.Render(content)
}

// RenderWeekly renders per-week totals, oldest week first.
func RenderWeekly(weeks []stats.WeekStat) string {
	var content string
	content += headerStyle.Render(" weekly progress ") + "\n\n"

	content += dimStyle.Render(fmt.Sprintf("  %-12s %9s %7s %9s", "week", "sessions", "cards", "accuracy")) + "\n"
	for _, w := range weeks {
		accuracy := "-"
		if w.CardsStudied > 0 {
			accuracy = FormatAccuracy(w.Accuracy())
		}
		content += labelStyle.Render(fmt.Sprintf("  %-12s ", w.WeekStart.Format("Jan 02"))) +
			valueStyle.Render(fmt.Sprintf("%9d", w.Sessions)) +
			valueStyle.Render(fmt.Sprintf("%8d", w.CardsStudied)) +
			valueStyle.Render(fmt.Sprintf("%10s", accuracy)) + "\n"
	}

	return containerStyle.Render(content)
}

// RenderStreak renders the streak screen with a strip of the last days.
func RenderStreak(st streak.State, now time.Time) string {
	studied := make(map[string]bool, len(st.StudyDates))
	for _, d := range st.StudyDates {
		studied[d] = true
	}

	var strip strings.Builder
	for i := streakStripDays - 1; i >= 0; i-- {
		day := streak.Day(now.AddDate(0, 0, -i))
		if studied[day] {
			strip.WriteString(goodStyle.Render("■"))
		} else {
			strip.WriteString(dimStyle.Render("·"))
		}
		strip.WriteString(" ")
	}

	var content string
	content += headerStyle.Render(" learning streak ") + "\n"

	content += "\n" + labelStyle.Render("  Current: ") +
		valueStyle.Render(fmt.Sprintf("%d days", st.CurrentStreak)) + "\n"
	content += labelStyle.Render("  Longest: ") +
		valueStyle.Render(fmt.Sprintf("%d days", st.LongestStreak)) + "\n"
	if st.LastStudyDate != "" {
		content += labelStyle.Render("  Last studied: ") +
			valueStyle.Render(st.LastStudyDate) + "\n"
	}

	content += "\n" + sectionStyle.Render(fmt.Sprintf("┃ Last %d days", streakStripDays)) + "\n"
	content += "  " + strip.String() + "\n"

	return containerStyle.Render(content)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RenderAchievements renders the achievement table with progress bars.
func RenderAchievements(achs []achievement.Achievement) string {
	prog := progress.New(
		progress.WithGradient("#00ff00", "#00ffff"),
		progress.WithWidth(20),
	)

	var content string
	content += headerStyle.Render(" achievements ") + "\n"

	var category achievement.Category
	for i, a := range achs {
		if i == 0 || a.Category != category {
			category = a.Category
			content += "\n" + sectionStyle.Render("┃ "+titleCase(category.String())) + "\n"
		}

		if a.Unlocked() {
			content += goodStyle.Render("  ✓ "+a.Name) +
				dimStyle.Render("  "+a.Description)
			if a.UnlockedAt != nil {
				content += dimStyle.Render("  ("+a.UnlockedAt.Format("Jan 02")+")")
			}
			content += "\n"
			continue
		}

		content += dimStyle.Render("  ○ "+a.Name) + "\n"
		content += "    " + prog.ViewAs(a.Percent()/100) +
			" " + dimStyle.Render(fmt.Sprintf("%d/%d", a.Progress.Current, a.Progress.Required)) + "\n"
	}

	return containerStyle.Render(content)
}
