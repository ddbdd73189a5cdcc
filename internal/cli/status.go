package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/ravenscube/internal/config"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and journal information",
	Long:  `Display the resolved settings, the journal database and the most recent session.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	c := loadedConfig()

	fmt.Fprintln(out, "ravenscube Status")
	fmt.Fprintln(out, "=================")
	fmt.Fprintln(out)

	path := configPath
	if path == "" {
		path, _ = config.DefaultPath()
	}
	fmt.Fprintf(out, "Config:    %s\n", path)
	fmt.Fprintf(out, "Animation: %s\n", c.AnimationDuration)
	shuffle := "queued"
	if c.LegacyShuffle {
		shuffle = "legacy"
	}
	fmt.Fprintf(out, "Shuffle:   %d moves every %s (%s)\n", c.ShuffleMoves, c.ShuffleInterval, shuffle)
	fmt.Fprintf(out, "Orbit:     pitch %.0f°, yaw %.0f°, sensitivity %.2f, drag threshold %.0fpx\n",
		c.Pitch, c.Yaw, c.OrbitSensitivity, c.DragThreshold)
	fmt.Fprintln(out)

	if !c.JournalEnabled {
		fmt.Fprintln(out, "Journal:   disabled")
		return nil
	}

	db, err := openDB()
	if err != nil {
		fmt.Fprintf(out, "Journal:   unavailable (%v)\n", err)
		return nil
	}
	defer db.Close()

	fmt.Fprintf(out, "Journal:   %s\n", db.Path())
	if v, err := db.CurrentVersion(); err == nil {
		fmt.Fprintf(out, "Schema:    v%d\n", v)
	}

	last, err := storage.NewSessionRepository(db).GetLast()
	if err != nil {
		return fmt.Errorf("failed to get last session: %w", err)
	}
	if last == nil {
		fmt.Fprintln(out, "No sessions recorded")
		return nil
	}

	fmt.Fprintf(out, "Last session: %s (%s) started %s\n",
		shortID(last.SessionID), last.Host, last.StartedAt.Local().Format(time.RFC3339))
	if n, err := storage.NewRotationRepository(db).Count(last.SessionID); err == nil {
		fmt.Fprintf(out, "  %d rotations journaled\n", n)
	}
	if last.EndedAt == nil {
		fmt.Fprintln(out, "  (still open, or the program exited without closing it)")
	}
	return nil
}
