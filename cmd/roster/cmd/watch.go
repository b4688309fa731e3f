package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/watch"
	"github.com/spf13/cobra"
)

var watchFrom string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-import a roster file whenever it changes",
	Long: `Import a roster file, then keep watching it and import it again after
every change. New members are added; existing ones are reported as
duplicates. Stop with Ctrl-C.

Example:
  roster watch --from members.csv`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFrom, "from", "", "Roster to watch (defaults to ROSTER_DEFAULT_FILE)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := watchFrom
	if path == "" {
		path = app.Service.DefaultImportPath()
	}

	out := cmd.OutOrStdout()
	report := func(summary core.ImportSummary, err error) {
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), userError(err))
			return
		}
		fmt.Fprintln(out, summary.Message())
	}

	w, err := watch.New(path, app.Config.Roster.WatchDebounce, app.Service.ImportMembers, watch.WithResult(report))
	if err != nil {
		return err
	}
	defer w.Close()

	// The file may not exist yet; the watcher picks it up once created.
	report(app.Service.ImportMembers(ctx, w.Path()))
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", w.Path())

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
