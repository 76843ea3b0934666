package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var atFlag = StringFlag{Name: "at", Usage: "time of day (9:30, 6pm) or RFC 3339 timestamp; defaults to now"}

var checkinCmd = LeafCommand{
	Use:      "checkin",
	Short:    "Record the check-in time for a day",
	Args:     cobra.NoArgs,
	StrFlags: []StringFlag{atFlag, dateFlag},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		at, _ := cmd.Flags().GetString("at")
		date, _ := cmd.Flags().GetString("date")
		return runCheckIn(cmd, a, date, at, time.Now)
	}),
}.Build()

func runCheckIn(cmd *cobra.Command, a *app, dateExpr, atExpr string, nowFn func() time.Time) error {
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
	if err := r.CheckIn(at); err != nil {
		return fmt.Errorf("%s: %w", dayLabel(day), err)
	}
	if err := a.store.UpsertRecord(ctx, r); err != nil {
		return err
	}

	a.logger.Debug("checked in", "day", day.Format("2006-01-02"), "at", at)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "checked in at %s on %s\n", Primary(at.Format("15:04")), Info(dayLabel(day)))
	return nil
}
