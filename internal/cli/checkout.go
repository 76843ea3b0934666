package cli

import (
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/spf13/cobra"
)

var checkoutCmd = LeafCommand{
	Use:      "checkout",
	Short:    "Record the check-out time for a day",
	Args:     cobra.NoArgs,
	StrFlags: []StringFlag{atFlag, dateFlag},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		at, _ := cmd.Flags().GetString("at")
		date, _ := cmd.Flags().GetString("date")
		return runCheckOut(cmd, a, date, at, time.Now)
	}),
}.Build()

func runCheckOut(cmd *cobra.Command, a *app, dateExpr, atExpr string, nowFn func() time.Time) error {
	now := a.clock(nowFn)()
	day, err := resolveDay(dateExpr, now)
	if err != nil {
		return err
	}
	at, err := resolveInstant(atExpr, day, now)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	r, err := a.recordFor(ctx, day)
	if err != nil {
		return err
	}
	if err := r.CheckOut(at); err != nil {
		return fmt.Errorf("%s: %w", dayLabel(day), err)
	}
	if err := a.store.UpsertRecord(ctx, r); err != nil {
		return err
	}

	a.logger.Debug("checked out", "day", day.Format("2006-01-02"), "at", at)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "checked out at %s on %s, worked %s\n",
		Primary(at.Format("15:04")), Info(dayLabel(day)), Success(attendance.FormatHours(attendance.WorkedHours(r))))
	return nil
}
