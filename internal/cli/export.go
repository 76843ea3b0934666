package cli

import (
	"fmt"
	"time"

	"github.com/lyphol/funnytime/internal/transfer"
	"github.com/spf13/cobra"
)

var exportCmd = LeafCommand{
	Use:   "export",
	Short: "Export all records and workday overrides to a JSON file",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "output", Shorthand: "o", Usage: "output file path, - for stdout (default FunnyTime_<unix>.json)"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		output, _ := cmd.Flags().GetString("output")
		return runExport(cmd, a, output, time.Now)
	}),
}.Build()

func runExport(cmd *cobra.Command, a *app, output string, nowFn func() time.Time) error {
	ctx := commandContext(cmd)
	records, err := a.store.Records(ctx)
	if err != nil {
		return err
	}
	overrides, err := a.store.Overrides(ctx)
	if err != nil {
		return err
	}
	doc := transfer.Serialize(records, overrides)

	if output == "-" {
		return transfer.Encode(cmd.OutOrStdout(), doc)
	}
	if output == "" {
		output = transfer.DefaultFileName(nowFn())
	}
	if err := transfer.ExportFile(output, doc); err != nil {
		return err
	}

	a.logger.Debug("exported", "path", output, "records", len(doc.Records), "workdays", len(doc.Workdays))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d records and %d workday overrides to %s\n",
		len(doc.Records), len(doc.Workdays), Info(output))
	return nil
}
