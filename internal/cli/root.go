// Package cli implements the command-line interface for ravenscube.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/ravenscube/internal/config"
	"github.com/SeamusWaldron/ravenscube/internal/ctxlog"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	// cfg is loaded once per invocation by PersistentPreRunE.
	cfg *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "ravenscube",
	Short: "Interactive 3x3 Rubik's Cube",
	Long: `ravenscube - an interactive 3x3 Rubik's Cube for the terminal.

Click stickers to turn layers, drag to orbit the view, shuffle and reset.
Sessions are journaled to a local SQLite database so you can review your
play statistics later.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.ravenscube/config.hcl)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.ravenscube/ravenscube.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup installs the logger and loads the config file.
func setup(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("config loaded", "path", path)
	return nil
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel()}))
}

// getDBPath returns the database path from the flag, then the config file.
// Empty means the default location.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil {
		return cfg.JournalPath
	}
	return ""
}

// loadedConfig returns the config for the current command.
func loadedConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
