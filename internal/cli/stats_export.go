package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/stats"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// pdfTitle labels a period with ASCII only; the built-in PDF fonts have no
// CJK glyphs.
func pdfTitle(r stats.Report) string {
	if r.Period == stats.Month {
		return r.Start.Format("January 2006")
	}
	year, week := r.Start.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// defaultPDFName is used when --output is not given.
func defaultPDFName(r stats.Report) string {
	return fmt.Sprintf("FunnyTime_%s.pdf", pdfTitle(r))
}

// renderStatsPDF writes the report, one row per day with its check-in and
// check-out, to outputPath.
func renderStatsPDF(r stats.Report, records []attendance.Record, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Attendance", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, pdfTitle(r), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	header := props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}
	headerRight := header
	headerRight.Align = align.Right
	m.AddRow(8,
		text.NewCol(4, "Day", header),
		text.NewCol(2, "In", header),
		text.NewCol(2, "Out", header),
		text.NewCol(2, "", header),
		text.NewCol(2, "Hours", headerRight),
	)

	for _, d := range r.Daily {
		var in, out string
		if i := attendance.Find(records, d.Date); i >= 0 {
			in, out = clockLabel(records[i].CheckInAt), clockLabel(records[i].CheckOutAt)
		}
		cell := props.Text{Size: 9}
		if !d.Workday {
			cell.Color = &pdfMutedColor
		}
		right := cell
		right.Align = align.Right

		hours := attendance.FormatHours(d.Hours)
		note := ""
		if !d.Workday {
			hours, note = "-", "rest day"
		}
		m.AddRow(6,
			text.NewCol(4, d.Date.Format("Mon Jan 2"), cell),
			text.NewCol(2, in, cell),
			text.NewCol(2, out, cell),
			text.NewCol(2, note, cell),
			text.NewCol(2, hours, right),
		)
	}

	s := r.Summary
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Total", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, attendance.FormatHours(s.Total), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("Average %s over %d days, %d workdays in period",
			attendance.FormatHours(s.Average), s.Days, r.WorkdayCount()), props.Text{
			Size:  9,
			Color: &pdfMutedColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return doc.Save(outputPath)
}
