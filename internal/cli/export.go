package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

var (
	exportSessionID  string
	exportFormat     string
	exportOutput     string
	exportLast       bool
	exportNoShuffles bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journaled rotations",
	Long: `Export the rotations of a session in text or JSON format.

Examples:
  ravenscube export --last
  ravenscube export --id <session_id> --format json
  ravenscube export --last --no-shuffles -o moves.txt`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportNoShuffles, "no-shuffles", false, "Leave out shuffle rotations")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := resolveSession(storage.NewSessionRepository(db), exportSessionID, exportLast)
	if err != nil {
		return err
	}

	records, err := storage.NewRotationRepository(db).GetBySession(session.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get rotations: %w", err)
	}
	if exportNoShuffles {
		kept := records[:0]
		for _, r := range records {
			if r.Source != "shuffle" {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	if len(records) == 0 {
		return fmt.Errorf("no rotations found for session %s", session.SessionID)
	}

	output, err := formatRotations(records, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rotations to %s\n", len(records), exportOutput)
	return nil
}

// formatRotations renders records as notation text or a JSON array.
func formatRotations(records []storage.RotationRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		// Rebuilt from axis, layer and direction so the text always
		// parses back with ParseMoves.
		return ravenscube.FormatMoves(storage.ToMoves(records)), nil

	case "json":
		type RotationJSON struct {
			Seq      uint64 `json:"seq"`
			TsMs     int64  `json:"ts_ms"`
			Axis     string `json:"axis"`
			Layer    int    `json:"layer"`
			Dir      int    `json:"dir"`
			Notation string `json:"notation"`
			Source   string `json:"source"`
		}

		out := make([]RotationJSON, len(records))
		for i, r := range records {
			out[i] = RotationJSON{
				Seq:      r.Seq,
				TsMs:     r.TsMs,
				Axis:     r.Axis,
				Layer:    r.Layer,
				Dir:      r.Dir,
				Notation: r.Notation,
				Source:   r.Source,
			}
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}
