package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	importFrom string
	importTo   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate a roster file and add its members",
	Long: `Read a roster file, report every rejected line and add the valid,
new members to the store.

Examples:
  # Import members.csv from the working directory
  roster import

  # Import a specific file and write the cleaned roster
  roster import --from new.csv --to cleaned.csv`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "", "Roster to import (defaults to ROSTER_DEFAULT_FILE)")
	importCmd.Flags().StringVar(&importTo, "to", "", "Export the resulting roster to this file")
}

func runImport(cmd *cobra.Command, _ []string) error {
	summary, err := app.Service.ImportMembers(cmd.Context(), importFrom)
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary.Message())

	if importTo == "" {
		return nil
	}

	exported, err := app.Service.ExportMembers(cmd.Context(), importTo)
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), exported.Message())
	return nil
}
