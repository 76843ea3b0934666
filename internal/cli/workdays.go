package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/lyphol/funnytime/internal/calendar"
	"github.com/lyphol/funnytime/internal/timeparse"
	"github.com/lyphol/funnytime/internal/workday"
	"github.com/spf13/cobra"
)

var weekDateFlag = StringFlag{Name: "date", Shorthand: "d", Usage: "any day in the week (defaults to today)"}

var workdaysCmd = GroupCommand{
	Use:      "workdays",
	Short:    "Show or change the workdays of a week",
	StrFlags: []StringFlag{weekDateFlag},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		date, _ := cmd.Flags().GetString("date")
		return runWorkdays(cmd, a, date, time.Now)
	}),
	Subcommands: []*cobra.Command{workdaysSetCmd},
}.Build()

var workdaysSetCmd = LeafCommand{
	Use:      "set <weekday> <on|off>",
	Short:    "Mark a weekday of a week as workday or rest day",
	Args:     cobra.ExactArgs(2),
	StrFlags: []StringFlag{weekDateFlag},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		date, _ := cmd.Flags().GetString("date")
		return runWorkdaysSet(cmd, a, date, args[0], args[1], time.Now)
	}),
}.Build()

func runWorkdays(cmd *cobra.Command, a *app, dateExpr string, nowFn func() time.Time) error {
	day, err := timeparse.ParseDay(dateExpr, a.clock(nowFn)())
	if err != nil {
		return err
	}
	overrides, err := a.store.Overrides(commandContext(cmd))
	if err != nil {
		return err
	}
	return printWeek(cmd, a, workday.KeyOf(day), overrides)
}

func printWeek(cmd *cobra.Command, a *app, k workday.Key, overrides workday.Overrides) error {
	set := workday.WorkdaysFor(k, overrides)
	dates, err := workday.WeekDates(k, overrides, a.loc)
	if err != nil {
		return err
	}

	monday := calendar.ISOWeekStart(k.Year, k.Week, a.loc)
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s  %s\n", Bold(calendar.FormatWeekNumber(monday)),
		Silent(fmt.Sprintf("%s to %s", calendar.FormatDate(monday), calendar.FormatDate(monday.AddDate(0, 0, 6)))))

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		status := Silent("rest")
		if set.Has(i + 1) {
			status = Success("workday")
		}
		_, _ = fmt.Fprintf(w, "  %s  %s\n", padRight(dayLabel(day), dayColWidth), status)
	}

	source := "default"
	if _, ok := overrides.Lookup(k); ok {
		source = "override"
	}
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", Info(workday.Describe(set)), Silent(workday.RRule(set)), source)

	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = d.Format("01-02")
	}
	_, _ = fmt.Fprintf(w, "%d workdays: %s\n", len(dates), strings.Join(labels, " "))
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "workday":
		return true, nil
	case "off", "false", "no", "rest":
		return false, nil
	}
	return false, fmt.Errorf("invalid status %q (expected on or off)", s)
}

func runWorkdaysSet(cmd *cobra.Command, a *app, dateExpr, weekdayExpr, statusExpr string, nowFn func() time.Time) error {
	day, err := timeparse.ParseDay(dateExpr, a.clock(nowFn)())
	if err != nil {
		return err
	}
	weekday, err := timeparse.ParseWeekday(weekdayExpr)
	if err != nil {
		return err
	}
	on, err := parseOnOff(statusExpr)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	overrides, err := a.store.Overrides(ctx)
	if err != nil {
		return err
	}

	k := workday.KeyOf(day)
	updated, err := workday.SetWorkdayStatus(overrides, k.Year, k.Week, weekday, on)
	if err != nil {
		return err
	}
	if err := a.store.UpsertOverride(ctx, workday.Override{Year: k.Year, Week: k.Week, Workdays: updated[k]}); err != nil {
		return err
	}

	state := "rest day"
	if on {
		state = "workday"
	}
	a.logger.Debug("workday status set", "week", k.String(), "weekday", weekday, "on", on)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s of %s is now a %s\n\n",
		Primary(calendar.WeekdayName(weekday)), calendar.FormatWeekNumber(day), state)
	return printWeek(cmd, a, k, updated)
}
