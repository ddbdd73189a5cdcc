package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/ravenscube/internal/analysis"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

var (
	statsSessionID string
	statsLast      bool
	statsLimit     int
	statsJSON      bool
	statsEvents    string
	statsPrune     int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics from the journal",
	Long: `Summarize journaled sessions: rotations, shuffles, solves and pacing.

Without --id or --last, prints totals, the trend over the most recent
sessions and a table of them.

Examples:
  ravenscube stats
  ravenscube stats --last
  ravenscube stats --last --events rejected
  ravenscube stats --id <session_id> --json
  ravenscube stats --prune 50`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSessionID, "id", "", "Session ID to summarize")
	statsCmd.Flags().BoolVar(&statsLast, "last", false, "Summarize the last session")
	statsCmd.Flags().IntVar(&statsLimit, "limit", 10, "Number of sessions to list")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON")
	statsCmd.Flags().StringVar(&statsEvents, "events", "", "List the session's events of one type (open, reset, close, shuffle_start, shuffle_done, solved, rejected)")
	statsCmd.Flags().IntVar(&statsPrune, "prune", -1, "Delete all but the N most recent sessions")
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	sessions := storage.NewSessionRepository(db)

	if statsPrune >= 0 {
		return pruneSessions(out, sessions, statsPrune)
	}

	if statsSessionID == "" && !statsLast {
		if statsEvents != "" {
			return fmt.Errorf("--events needs --id or --last")
		}
		return printOverview(out, db, sessions)
	}

	session, err := resolveSession(sessions, statsSessionID, statsLast)
	if err != nil {
		return err
	}

	if statsEvents != "" {
		return printEvents(out, db, session, statsEvents)
	}

	st, err := summarizeSession(db, session)
	if err != nil {
		return err
	}

	if statsJSON {
		return writeJSON(out, struct {
			*analysis.SessionSummary
			Repetitions *analysis.RepetitionReport `json:"repetitions"`
			Diagnostics *analysis.Diagnostics      `json:"diagnostics"`
		}{st.summary, st.repetitions, st.diagnostics})
	}
	printSummary(out, st)
	return nil
}

// pruneSessions deletes every session older than the keep most recent.
// Rotations and events go with them.
func pruneSessions(out io.Writer, repo *storage.SessionRepository, keep int) error {
	all, err := repo.List(0)
	if err != nil {
		return err
	}
	if len(all) <= keep {
		fmt.Fprintf(out, "Nothing to prune (%d sessions)\n", len(all))
		return nil
	}

	for _, s := range all[keep:] {
		if err := repo.Delete(s.SessionID); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Pruned %d sessions, kept %d\n", len(all)-keep, keep)
	return nil
}

// printEvents lists a session's events of one type.
func printEvents(out io.Writer, db *storage.DB, s *storage.Session, eventType string) error {
	events, err := storage.NewEventRepository(db).GetByType(s.SessionID, eventType)
	if err != nil {
		return err
	}

	if statsJSON {
		type EventJSON struct {
			TsMs   int64  `json:"ts_ms"`
			Type   string `json:"type"`
			Detail string `json:"detail,omitempty"`
		}
		list := make([]EventJSON, len(events))
		for i, e := range events {
			list[i] = EventJSON{TsMs: e.TsMs, Type: e.EventType}
			if e.Detail != nil {
				list[i].Detail = *e.Detail
			}
		}
		return writeJSON(out, list)
	}

	if len(events) == 0 {
		fmt.Fprintf(out, "No %s events in session %s\n", eventType, shortID(s.SessionID))
		return nil
	}
	for _, e := range events {
		line := fmt.Sprintf("%10s  %s", formatMs(e.TsMs), e.EventType)
		if e.Detail != nil {
			line += "  " + *e.Detail
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// resolveSession finds a session by ID or takes the last one.
func resolveSession(repo *storage.SessionRepository, id string, last bool) (*storage.Session, error) {
	var s *storage.Session
	var err error
	if last {
		s, err = repo.GetLast()
	} else {
		s, err = repo.Get(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if s == nil {
		if last {
			return nil, fmt.Errorf("no sessions found")
		}
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return s, nil
}

// sessionStats is everything stats derives from one session's journal.
type sessionStats struct {
	summary     *analysis.SessionSummary
	repetitions *analysis.RepetitionReport
	diagnostics *analysis.Diagnostics
}

func summarizeSession(db *storage.DB, s *storage.Session) (*sessionStats, error) {
	records, err := storage.NewRotationRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rotations: %w", err)
	}
	events, err := storage.NewEventRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	player := analysis.PlayerMoves(records)
	return &sessionStats{
		summary:     analysis.Summarize(*s, records, events),
		repetitions: analysis.AnalyzeRepetitions(player),
		diagnostics: analysis.Diagnose(player),
	}, nil
}

func printOverview(out io.Writer, db *storage.DB, repo *storage.SessionRepository) error {
	totals, err := analysis.LoadTotals(db)
	if err != nil {
		return fmt.Errorf("failed to load totals: %w", err)
	}
	list, err := repo.List(statsLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	summaries := make([]*analysis.SessionSummary, 0, len(list))
	points := make([]analysis.TrendPoint, 0, len(list))
	for i := range list {
		st, err := summarizeSession(db, &list[i])
		if err != nil {
			return err
		}
		summaries = append(summaries, st.summary)
		points = append(points, analysis.NewTrendPoint(list[i], st.summary, st.repetitions))
	}
	trend := analysis.AnalyzeTrends(points)

	if statsJSON {
		return writeJSON(out, struct {
			Totals   *analysis.Totals           `json:"totals"`
			Trend    *analysis.TrendReport      `json:"trend"`
			Sessions []*analysis.SessionSummary `json:"sessions"`
		}{totals, trend, summaries})
	}

	fmt.Fprintln(out, "ravenscube Statistics")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database:  %s\n", db.Path())
	fmt.Fprintf(out, "Sessions:  %d\n", totals.Sessions)
	fmt.Fprintf(out, "Rotations: %d\n", totals.Rotations)
	fmt.Fprintf(out, "Shuffles:  %d\n", totals.Shuffles)
	fmt.Fprintf(out, "Solves:    %d\n", totals.Solves)

	if len(totals.BySource) > 0 {
		sources := make([]string, 0, len(totals.BySource))
		for src := range totals.BySource {
			sources = append(sources, src)
		}
		sort.Strings(sources)
		fmt.Fprintln(out, "By source:")
		for _, src := range sources {
			fmt.Fprintf(out, "  %-8s %d\n", src, totals.BySource[src])
		}
	}

	if len(list) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No sessions recorded yet. Run 'ravenscube play' to start one.")
		return nil
	}

	printTrend(out, trend)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-10s %-9s %-20s %10s %6s %6s\n", "SESSION", "HOST", "STARTED", "DURATION", "MOVES", "TPS")
	for i, sum := range summaries {
		s := &list[i]
		dur := "-"
		if s.DurationMs != nil {
			dur = formatMs(*s.DurationMs)
		}
		fmt.Fprintf(out, "%-10s %-9s %-20s %10s %6d %6.2f\n",
			shortID(s.SessionID), s.Host, s.StartedAt.Local().Format("2006-01-02 15:04:05"), dur, sum.TotalRotations, sum.TPS)
	}
	return nil
}

func printTrend(out io.Writer, t *analysis.TrendReport) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Trend (last %d sessions, %d with player moves)\n", t.WindowSize, t.ActiveSessions)
	if t.ActiveSessions == 0 {
		return
	}
	fmt.Fprintf(out, "  Rotations/session: %.1f\n", t.AvgRotations)
	fmt.Fprintf(out, "  TPS:               %.2f (best %.2f, worst %.2f)\n", t.AvgTPS, t.Best.TPS, t.Worst.TPS)
	fmt.Fprintf(out, "  Cancellation rate: %.0f%%\n", t.AvgCancellationRate*100)
	if t.ActiveSessions >= 4 {
		fmt.Fprintf(out, "  TPS change:        %+.0f%%\n", t.TPSChangePct)
	}
	fmt.Fprintf(out, "  Consistency:       %.0f/100\n", t.ConsistencyScore)
	for _, w := range []int{5, 10, 25, 50} {
		if v, ok := t.RollingTPS[w]; ok {
			fmt.Fprintf(out, "  Last %-2d TPS:       %.2f\n", w, v)
		}
	}
}

func printSummary(out io.Writer, st *sessionStats) {
	s, r, d := st.summary, st.repetitions, st.diagnostics

	fmt.Fprintf(out, "Session %s (%s)\n", s.SessionID, s.Host)
	fmt.Fprintln(out, strings.Repeat("=", 8+len(s.SessionID)+len(s.Host)+3))
	fmt.Fprintf(out, "Started:    %s\n", s.StartedAt)
	if s.EndedAt != "" {
		fmt.Fprintf(out, "Ended:      %s (%s)\n", s.EndedAt, formatMs(s.DurationMs))
	}
	if s.LegacyShuffle {
		fmt.Fprintln(out, "Shuffle:    legacy timing")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rotations:  %d (%d player, %d shuffle)\n", s.TotalRotations, s.PlayerRotations, s.ShuffleRotations)
	fmt.Fprintf(out, "Optimized:  %d moves (%.0f%% efficient)\n", s.OptimizedMoves, s.Efficiency*100)
	fmt.Fprintf(out, "TPS:        %.2f\n", s.TPS)
	fmt.Fprintf(out, "Longest pause: %s, %d over 1.5s\n", formatMs(s.LongestPauseMs), s.PausesOver1500)
	fmt.Fprintf(out, "Shuffles: %d  Solves: %d  Resets: %d  Rejected: %d\n", s.Shuffles, s.Solves, s.Resets, s.Rejected)

	if d != nil && d.Rotations > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Reversals:  %d  Full cycles: %d\n", d.Reversals, d.FullCycles)
		fmt.Fprintf(out, "Layers:     %d used, busiest %s, entropy %.2f/%.2f bits\n",
			d.DistinctLayers, d.BusiestLayer, d.LayerEntropy, analysis.MaxLayerEntropy)
		if d.Rotations > 1 {
			fmt.Fprintf(out, "Gaps:       avg %s, min %s, max %s (%d > 0.75s, %d > 1.5s, %d > 3s)\n",
				formatMs(int64(d.AvgGapMs)), formatMs(d.MinGapMs), formatMs(d.MaxGapMs),
				d.GapsOver750ms, d.GapsOver1500ms, d.GapsOver3000ms)
		}
	}

	if r == nil || (len(r.ImmediateCancellations) == 0 && len(r.BackAndForthPatterns) == 0) {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Wasted moves: %d\n", r.TotalWastedMoves)
	for _, c := range r.ImmediateCancellations {
		fmt.Fprintf(out, "  %s %s at %s\n", c.Move1, c.Move2, formatMs(c.TsMs))
	}
	for _, p := range r.BackAndForthPatterns {
		fmt.Fprintf(out, "  (%s) x%d\n", strings.Join(p.Pattern, " "), p.Count)
	}
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func formatMs(ms int64) string {
	secs := float64(ms) / 1000
	if secs < 60 {
		return fmt.Sprintf("%.1fs", secs)
	}
	mins := int(secs / 60)
	return fmt.Sprintf("%d:%05.2f", mins, secs-float64(mins*60))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
