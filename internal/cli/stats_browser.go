package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/stats"
	"github.com/lyphol/funnytime/internal/workday"
	"github.com/mattn/go-isatty"
)

// statsModel browses periods. Records and overrides are loaded once; every
// move rebuilds the report from them.
type statsModel struct {
	nav       stats.Navigator
	records   []attendance.Record
	overrides workday.Overrides
	period    stats.Period
	anchor    time.Time
	report    stats.Report
	notice    string
}

func newStatsModel(p stats.Period, anchor time.Time, records []attendance.Record, overrides workday.Overrides, nav stats.Navigator) statsModel {
	m := statsModel{
		nav:       nav,
		records:   records,
		overrides: overrides,
		period:    p,
		anchor:    nav.Clamp(p, anchor),
	}
	return m.rebuild()
}

func (m statsModel) rebuild() statsModel {
	m.report = stats.BuildReport(m.period, m.anchor, m.records, m.overrides, m.nav)
	return m
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.notice = ""
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m = m.step(-1)
	case "right", "l":
		m = m.step(1)
	case "w":
		m.period, m.anchor = m.nav.SwitchPeriod(stats.Week, m.anchor)
	case "m":
		m.period, m.anchor = m.nav.SwitchPeriod(stats.Month, m.anchor)
	case "t":
		m.anchor = m.nav.Today()
	default:
		return m, nil
	}
	return m.rebuild(), nil
}

func (m statsModel) step(dir int) statsModel {
	anchor, err := m.nav.Step(m.period, m.anchor, dir)
	if errors.Is(err, stats.ErrOutOfRange) {
		if dir < 0 {
			m.notice = "no older periods"
		} else {
			m.notice = "already at the current period"
		}
		return m
	}
	m.anchor = anchor
	return m
}

func (m statsModel) View() string {
	return renderStats(m.report, true, m.notice)
}

// showStats runs the browser on a terminal and prints the table otherwise.
func showStats(out io.Writer, m statsModel) error {
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		_, err := fmt.Fprint(out, renderStats(m.report, false, ""))
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
