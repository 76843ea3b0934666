package cli

import (
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/lyphol/funnytime/internal/stats"
	"github.com/lyphol/funnytime/internal/workday"
	"github.com/spf13/cobra"
)

var periodFlag = StringFlag{Name: "period", Shorthand: "p", Usage: "week or month", Default: "week"}

var recordsCmd = LeafCommand{
	Use:      "records",
	Short:    "List the records of a week or month, newest first",
	Args:     cobra.NoArgs,
	StrFlags: []StringFlag{periodFlag, dateFlag},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		period, _ := cmd.Flags().GetString("period")
		date, _ := cmd.Flags().GetString("date")
		return runRecords(cmd, a, period, date, time.Now)
	}),
}.Build()

func runRecords(cmd *cobra.Command, a *app, periodExpr, dateExpr string, nowFn func() time.Time) error {
	p, err := stats.ParsePeriod(periodExpr)
	if err != nil {
		return err
	}
	now := a.clock(nowFn)()
	anchor, err := resolveDay(dateExpr, now)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	all, err := a.store.Records(ctx)
	if err != nil {
		return err
	}
	overrides, err := a.store.Overrides(ctx)
	if err != nil {
		return err
	}

	start, end := stats.ComputeRange(p, anchor)
	records := attendance.InRange(all, start, end)

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s\n\n", Bold(stats.PeriodTitle(p, anchor)))
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, Silent("no records"))
		return nil
	}
	for _, r := range records {
		line := describeRecord(r)
		if !workday.IsWorkday(r.Date, overrides) {
			line += "  " + Silent("rest day")
		}
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}
