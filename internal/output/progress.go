package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProgressBar renders a visual progress bar for a 0-100 percentage.
// Example: "████████░░ 80%"
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((percent / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case percent >= 70:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case percent >= 40:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%3.0f%%", percent)))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// higherIsBetter decides whether an increase is colored as an improvement.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// TrendArrowPercent is TrendArrow for percentage-point deltas.
func TrendArrowPercent(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.0f%%", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.0f%%", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// StreakBadge renders a streak count. atRisk marks a streak that is only
// alive because yesterday was completed.
func StreakBadge(days int, atRisk bool) string {
	if days == 0 {
		return StyleMuted.Render("no streak")
	}
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	badge := fmt.Sprintf("🔥 %d %s", days, unit)
	if atRisk {
		return StyleWarning.Render(badge + " (check in today)")
	}
	return StyleAccent.Render(badge)
}

var titleCaser = cases.Title(language.English)

// CategoryLabel title-cases a category or recommendation label,
// e.g. "time-management" becomes "Time Management".
func CategoryLabel(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
