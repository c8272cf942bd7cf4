package output

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/blackwell-systems/wellwatch/internal/streak"
	"github.com/charmbracelet/lipgloss"
)

// WeekChart draws one bar per day with the number of habits completed.
// Days with no habits get an empty bar so the week keeps its shape.
func WeekChart(days []streak.Completion, width, height int) string {
	if len(days) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 4 {
		height = 4
	}

	chart := barchart.New(width, height)

	bars := make([]barchart.BarData, 0, len(days))
	for _, c := range days {
		style := lipgloss.NewStyle().Foreground(completionColor(c.Rate()))
		bars = append(bars, barchart.BarData{
			Label: c.Date.Weekday().String()[:3],
			Values: []barchart.BarValue{{
				Name:  c.Date.String(),
				Value: float64(c.Completed),
				Style: style,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func completionColor(rate float64) lipgloss.Color {
	if noColor {
		return ""
	}
	switch {
	case rate >= 0.7:
		return ColorSuccess
	case rate >= 0.4:
		return ColorWarning
	default:
		return ColorError
	}
}
