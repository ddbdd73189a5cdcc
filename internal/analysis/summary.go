// Package analysis computes statistics over journaled widget sessions.
package analysis

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

// SessionSummary contains statistics for a single widget session.
type SessionSummary struct {
	SessionID        string  `json:"session_id"`
	Host             string  `json:"host"`
	StartedAt        string  `json:"started_at"`
	EndedAt          string  `json:"ended_at,omitempty"`
	DurationMs       int64   `json:"duration_ms"`
	TotalRotations   int     `json:"total_rotations"`
	PlayerRotations  int     `json:"player_rotations"`
	ShuffleRotations int     `json:"shuffle_rotations"`
	OptimizedMoves   int     `json:"optimized_moves"`
	Efficiency       float64 `json:"efficiency"`
	TPS              float64 `json:"tps"`
	LongestPauseMs   int64   `json:"longest_pause_ms"`
	PausesOver1500   int     `json:"pauses_over_1500ms"`
	Shuffles         int     `json:"shuffles"`
	Solves           int     `json:"solves"`
	Resets           int     `json:"resets"`
	Rejected         int     `json:"rejected"`
	LegacyShuffle    bool    `json:"legacy_shuffle"`
}

// TimedMove is a committed rotation with its journal timestamp.
type TimedMove struct {
	Move ravenscube.Move
	TsMs int64
}

// PauseInfo represents a gap between player rotations.
type PauseInfo struct {
	AfterIndex int   `json:"after_index"`
	DurationMs int64 `json:"duration_ms"`
	TsMs       int64 `json:"ts_ms"`
}

// PlayerMoves returns the rotations the player issued, dropping shuffle
// steps.
func PlayerMoves(records []storage.RotationRecord) []TimedMove {
	moves := make([]TimedMove, 0, len(records))
	for _, rec := range records {
		if rec.Source == ravenscube.SourceShuffle.String() {
			continue
		}
		m, err := rec.Move()
		if err != nil {
			continue
		}
		moves = append(moves, TimedMove{Move: m, TsMs: rec.TsMs})
	}
	return moves
}

// Summarize builds the summary of one session from its journal rows.
func Summarize(s storage.Session, records []storage.RotationRecord, events []storage.Event) *SessionSummary {
	sum := &SessionSummary{
		SessionID:      s.SessionID,
		Host:           s.Host,
		StartedAt:      s.StartedAt.Format(time.RFC3339),
		TotalRotations: len(records),
		LegacyShuffle:  s.LegacyShuffle,
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	}

	player := PlayerMoves(records)
	sum.PlayerRotations = len(player)
	sum.ShuffleRotations = len(records) - len(player)

	plain := make([]ravenscube.Move, len(player))
	for i, tm := range player {
		plain[i] = tm.Move
	}
	optimized := OptimizeMoves(plain)
	sum.OptimizedMoves = len(optimized)
	sum.Efficiency = CalculateEfficiency(plain, optimized)

	sum.TPS = CalculateTPS(player, sum.DurationMs)
	sum.LongestPauseMs = FindLongestPause(player)
	sum.PausesOver1500 = CountPausesOver(player, 1500)

	for _, e := range events {
		switch e.EventType {
		case storage.EventShuffleStart:
			sum.Shuffles++
		case storage.EventSolved:
			sum.Solves++
		case storage.EventReset:
			sum.Resets++
		case storage.EventRejected:
			sum.Rejected++
		}
	}

	return sum
}

// AnalyzePauses finds all gaps of at least thresholdMs between moves.
func AnalyzePauses(moves []TimedMove, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterIndex: i - 1,
				DurationMs: gap,
				TsMs:       moves[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second for a move sequence.
func CalculateTPS(moves []TimedMove, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// FindLongestPause finds the longest gap in a move sequence.
func FindLongestPause(moves []TimedMove) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].TsMs - moves[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps strictly longer than thresholdMs.
func CountPausesOver(moves []TimedMove, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].TsMs-moves[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// Totals aggregates every session in the journal.
type Totals struct {
	Sessions  int            `json:"sessions"`
	Rotations int            `json:"rotations"`
	BySource  map[string]int `json:"by_source"`
	Solves    int            `json:"solves"`
	Shuffles  int            `json:"shuffles"`
}

// LoadTotals queries the journal for all-time totals.
func LoadTotals(db *storage.DB) (*Totals, error) {
	t := &Totals{}
	var err error
	if t.Sessions, err = storage.NewSessionRepository(db).Count(); err != nil {
		return nil, fmt.Errorf("failed to load session total: %w", err)
	}

	bySource, err := storage.NewRotationRepository(db).CountBySource()
	if err != nil {
		return nil, fmt.Errorf("failed to load rotation totals: %w", err)
	}
	t.BySource = bySource
	for _, n := range bySource {
		t.Rotations += n
	}

	events := storage.NewEventRepository(db)
	if t.Solves, err = events.CountByType(storage.EventSolved); err != nil {
		return nil, fmt.Errorf("failed to load solve total: %w", err)
	}
	if t.Shuffles, err = events.CountByType(storage.EventShuffleStart); err != nil {
		return nil, fmt.Errorf("failed to load shuffle total: %w", err)
	}
	return t, nil
}
