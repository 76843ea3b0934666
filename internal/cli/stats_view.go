package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/stats"
)

const (
	dayColWidth   = 19
	hoursColWidth = 7
	barMaxWidth   = 24
	// hours shown by a full bar
	barMaxHours = 12
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	dotStyle      = lipgloss.NewStyle().Faint(true)
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	restStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	disabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

// renderStats draws a report as a per-day table with hour bars. keys adds
// the browser's key help, notice a transient message.
func renderStats(r stats.Report, keys bool, notice string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s ---", r.Title)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(padRight("Day", dayColWidth)))
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padCenter("Hours", hoursColWidth)))
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render("Chart"))
	b.WriteString("\n")
	b.WriteString(separator())

	for _, d := range r.Daily {
		b.WriteString(padRight(dayLabel(d.Date), dayColWidth))
		b.WriteString(" | ")
		switch {
		case !d.Workday:
			b.WriteString(restStyle.Render(padCenter("rest", hoursColWidth)))
		case d.Hours == 0:
			b.WriteString(dotStyle.Render(padCenter(".", hoursColWidth)))
		default:
			b.WriteString(padCenter(attendance.FormatHours(d.Hours), hoursColWidth))
		}
		b.WriteString(" | ")
		b.WriteString(bar(d.Hours))
		b.WriteString("\n")
	}

	b.WriteString(separator())
	s := r.Summary
	b.WriteString(headerStyle.Render(padRight("Total", dayColWidth)))
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padCenter(attendance.FormatHours(s.Total), hoursColWidth)))
	b.WriteString(" | ")
	b.WriteString(fmt.Sprintf("average %s over %d days, %d workdays",
		attendance.FormatHours(s.Average), s.Days, r.WorkdayCount()))
	b.WriteString("\n\n")

	b.WriteString(footer(r, keys, notice))
	b.WriteString("\n")
	return b.String()
}

func footer(r stats.Report, keys bool, notice string) string {
	older, newer := "◀ older", "newer ▶"
	if keys {
		older, newer = "◀ h older", "l newer ▶"
	}
	if !r.CanGoBack {
		older = disabledStyle.Render(older)
	}
	if !r.CanGoForward {
		newer = disabledStyle.Render(newer)
	}

	parts := []string{older, newer}
	if keys {
		parts = append(parts, "w week", "m month", "t today", "q quit")
	}
	line := footerStyle.Render(strings.Join(parts, "  |  "))
	if notice != "" {
		line = noticeStyle.Render(notice) + "  " + line
	}
	return line
}

func separator() string {
	return strings.Repeat("-", dayColWidth) + "-+-" + strings.Repeat("-", hoursColWidth) + "-+-" + strings.Repeat("-", barMaxWidth) + "\n"
}

// bar scales hours to at most barMaxWidth cells. A negative value comes
// from an inverted imported pair and is flagged instead of drawn.
func bar(hours float64) string {
	if hours < 0 {
		return Error("!")
	}
	cells := int(math.Round(hours / barMaxHours * barMaxWidth))
	if cells > barMaxWidth {
		cells = barMaxWidth
	}
	if cells == 0 {
		return ""
	}
	return barStyle.Render(strings.Repeat("█", cells))
}

// padRight pads s to width terminal cells. Wide runes count double.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
