package cli

import (
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/attendance"
	"github.com/spf13/cobra"
)

var punchCmd = LeafCommand{
	Use:   "punch",
	Short: "Check in, or check out when already checked in today",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return runPunch(cmd, a, time.Now)
	}),
}.Build()

func runPunch(cmd *cobra.Command, a *app, nowFn func() time.Time) error {
	now := a.clock(nowFn)().Truncate(time.Second)
	ctx := commandContext(cmd)

	r, err := a.recordFor(ctx, now)
	if err != nil {
		return err
	}
	state, err := r.Punch(now)
	if err != nil {
		return fmt.Errorf("%s: %w", dayLabel(r.Date), err)
	}
	if err := a.store.UpsertRecord(ctx, r); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch state {
	case attendance.CheckedIn:
		_, _ = fmt.Fprintf(w, "checked in at %s\n", Primary(now.Format("15:04")))
	case attendance.Completed:
		_, _ = fmt.Fprintf(w, "checked out at %s, worked %s\n",
			Primary(now.Format("15:04")), Success(attendance.FormatHours(attendance.WorkedHours(r))))
	}
	return nil
}
