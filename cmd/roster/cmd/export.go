package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportTo   string
	exportFrom string
	exportOpen bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all members to a roster file",
	Long: `Write every stored member to a roster file, creating parent directories
and overwriting an existing file.

Examples:
  roster export
  roster export --to out/members.csv --open

  # Without a database, load members first
  roster export --from members.csv --to copy.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Destination file (defaults to ROSTER_EXPORT_FILE)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Import this roster before exporting")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "Open the exported file in the default viewer")
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportFrom != "" {
		summary, err := app.Service.ImportMembers(cmd.Context(), exportFrom)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), summary.Message())
	}

	summary, err := app.Service.ExportMembers(cmd.Context(), exportTo)
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary.Message())
	return nil
}
