package cli

import (
	"fmt"

	"github.com/lyphol/funnytime/internal/transfer"
	"github.com/spf13/cobra"
)

var importCmd = LeafCommand{
	Use:   "import <file>",
	Short: "Replace all data with the contents of an exported JSON file",
	Long: "Replace all records and workday overrides with the contents of an exported JSON file.\n" +
		"Pass - to read the document from stdin. Existing data is discarded.",
	Args: cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirm, err := importConfirm(args[0], yes)
		if err != nil {
			return err
		}
		return runImport(cmd, a, args[0], confirm)
	}),
}.Build()

// importConfirm picks the confirm for an import. A document piped on stdin
// leaves no terminal for the prompt, so it needs --yes.
func importConfirm(path string, yes bool) (ConfirmFunc, error) {
	if path == "-" && !yes {
		return nil, fmt.Errorf("importing from stdin requires --yes")
	}
	return confirmFor(yes), nil
}

func runImport(cmd *cobra.Command, a *app, path string, confirm ConfirmFunc) error {
	w := cmd.OutOrStdout()
	ok, err := askConfirm(confirm, "Replace all existing records and workdays?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	ctx := commandContext(cmd)
	var snap transfer.Snapshot
	if path == "-" {
		snap, err = transfer.DeserializeAndReplace(ctx, cmd.InOrStdin(), a.loc, a.store)
	} else {
		snap, err = transfer.ImportFile(ctx, path, a.loc, a.store)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("imported", "path", path, "records", len(snap.Records), "workdays", len(snap.Overrides))
	_, _ = fmt.Fprintf(w, "imported %d records and %d workday overrides\n", len(snap.Records), len(snap.Overrides))
	return nil
}
