package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var editCmd = LeafCommand{
	Use:   "edit <day>",
	Short: "Correct the check-in or check-out time of a day",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "in", Usage: "new check-in time"},
		{Name: "out", Usage: "new check-out time"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		return runEdit(cmd, a, args[0], in, out, time.Now)
	}),
}.Build()

func runEdit(cmd *cobra.Command, a *app, dayExpr, inExpr, outExpr string, nowFn func() time.Time) error {
	if inExpr == "" && outExpr == "" {
		return fmt.Errorf("nothing to change: pass --in and/or --out")
	}

	now := a.clock(nowFn)()
	day, err := resolveDay(dayExpr, now)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	r, err := a.recordFor(ctx, day)
	if err != nil {
		return err
	}
	edited := r

	if inExpr != "" {
		in, err := resolveInstant(inExpr, day, now)
		if err != nil {
			return err
		}
		// a new pair is checked against itself, not the old check-out
		if outExpr != "" {
			edited.CheckOutAt = nil
		}
		if err := edited.EditCheckIn(in); err != nil {
			return err
		}
	}
	if outExpr != "" {
		out, err := resolveInstant(outExpr, day, now)
		if err != nil {
			return err
		}
		if err := edited.EditCheckOut(out); err != nil {
			return err
		}
	}

	if err := a.store.UpsertRecord(ctx, edited); err != nil {
		return err
	}
	a.logger.Debug("record edited", "day", day.Format("2006-01-02"))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", describeRecord(edited))
	return nil
}
