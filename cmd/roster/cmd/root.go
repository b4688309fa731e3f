package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/JonMunkholm/roster/internal/application"
	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// Global flags
	envFile  string
	logLevel string

	// app is opened before every subcommand and closed after it.
	app *application.App
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Import, export and serve member rosters",
	Long: `roster manages a member roster kept in CSV files.

Commands:
  import  - Validate a roster file and add its members
  export  - Write all members to a roster file
  watch   - Re-import a roster file whenever it changes
  serve   - Run the web dashboard and API

Without DATABASE_URL members are kept in memory for the life of the command.

Example:
  roster import --from members.csv
  roster import --from new.csv --to cleaned.csv
  roster export --to out/members.csv --open
  roster serve`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: openApp,
	PersistentPostRun: func(*cobra.Command, []string) {
		if app != nil {
			app.Close()
			app = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// openApp loads configuration and opens the member store.
func openApp(cmd *cobra.Command, _ []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if exportOpen {
		cfg.Roster.OpenAfterExport = true
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	app, err = application.Open(cmd.Context(), cfg)
	return err
}

// userError converts err into the message shown on the terminal.
func userError(err error) error {
	if core.IsUserFacing(err) {
		return errors.New(core.FormatUserError(err))
	}
	return err
}
