package cli

import (
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = LeafCommand{
	Use:   "stats",
	Short: "Show worked hours per day for a week or month",
	Long: "Show worked hours per day for a week or month. On a terminal the view is interactive:\n" +
		"h/l move between periods, w/m switch between week and month, t jumps to today, q quits.",
	Args: cobra.NoArgs,
	StrFlags: []StringFlag{
		periodFlag,
		dateFlag,
		{Name: "export", Usage: "export format (pdf)"},
		{Name: "output", Shorthand: "o", Usage: "output file path for --export"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		period, _ := cmd.Flags().GetString("period")
		date, _ := cmd.Flags().GetString("date")
		export, _ := cmd.Flags().GetString("export")
		output, _ := cmd.Flags().GetString("output")
		return runStats(cmd, a, period, date, export, output, time.Now)
	}),
}.Build()

func runStats(cmd *cobra.Command, a *app, periodExpr, dateExpr, exportFormat, output string, nowFn func() time.Time) error {
	p, err := stats.ParsePeriod(periodExpr)
	if err != nil {
		return err
	}
	if exportFormat != "" && exportFormat != "pdf" {
		return fmt.Errorf("unsupported export format %q (supported: pdf)", exportFormat)
	}

	nav := a.navigator(nowFn)
	anchor, err := resolveDay(dateExpr, nav.Today())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	records, err := a.store.Records(ctx)
	if err != nil {
		return err
	}
	overrides, err := a.store.Overrides(ctx)
	if err != nil {
		return err
	}

	m := newStatsModel(p, anchor, records, overrides, nav)
	a.logger.Debug("stats report built", "period", p.String(), "title", m.report.Title, "days", len(m.report.Daily))

	if exportFormat == "" {
		return showStats(cmd.OutOrStdout(), m)
	}

	if output == "" {
		output = defaultPDFName(m.report)
	}
	if err := renderStatsPDF(m.report, records, output); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", Primary(m.report.Title), Info(output))
	return nil
}
