package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/store"
	"github.com/spf13/cobra"
)

var deleteCmd = LeafCommand{
	Use:   "delete <day>",
	Short: "Delete the attendance record of a day",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return runDelete(cmd, a, args[0], confirmFor(yes), time.Now)
	}),
}.Build()

func runDelete(cmd *cobra.Command, a *app, dayExpr string, confirm ConfirmFunc, nowFn func() time.Time) error {
	now := a.clock(nowFn)()
	day, err := resolveDay(dayExpr, now)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	r, err := a.store.Record(ctx, day)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no record for %s", dayLabel(day))
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "  %s\n", describeRecord(r))

	ok, err := askConfirm(confirm, "Delete this record?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	if err := a.store.DeleteRecord(ctx, day); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "deleted record for %s\n", Silent(dayLabel(day)))
	return nil
}
