package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

// TrendPoint is one session's contribution to a trend.
type TrendPoint struct {
	SessionID        string    `json:"session_id"`
	StartedAt        time.Time `json:"started_at"`
	DurationMs       int64     `json:"duration_ms"`
	Rotations        int       `json:"rotations"`
	TPS              float64   `json:"tps"`
	CancellationRate float64   `json:"cancellation_rate"`
}

// NewTrendPoint builds a trend point from a session and its summaries.
func NewTrendPoint(s storage.Session, sum *SessionSummary, rep *RepetitionReport) TrendPoint {
	p := TrendPoint{
		SessionID:  s.SessionID,
		StartedAt:  s.StartedAt,
		DurationMs: sum.DurationMs,
		Rotations:  sum.PlayerRotations,
		TPS:        sum.TPS,
	}
	if rep != nil && sum.PlayerRotations > 0 {
		p.CancellationRate = float64(rep.TotalWastedMoves) / float64(sum.PlayerRotations)
	}
	return p
}

// TrendReport contains trend analysis across sessions.
type TrendReport struct {
	WindowSize     int       `json:"window_size"`
	ActiveSessions int       `json:"active_sessions"`
	DateRange      DateRange `json:"date_range"`

	AvgRotations        float64 `json:"avg_rotations"`
	AvgTPS              float64 `json:"avg_tps"`
	AvgCancellationRate float64 `json:"avg_cancellation_rate"`

	// Change in TPS from the first quarter of active sessions to the last,
	// in percent. Positive is faster.
	TPSChangePct float64 `json:"tps_change_pct"`
	// 0-100, higher means steadier TPS from session to session
	ConsistencyScore float64 `json:"consistency_score"`

	Best  *TrendPoint `json:"best,omitempty"`
	Worst *TrendPoint `json:"worst,omitempty"`

	// Average TPS of the most recent 5, 10, 25 and 50 active sessions
	RollingTPS map[int]float64 `json:"rolling_tps"`

	Sessions []TrendPoint `json:"sessions"`
}

// DateRange represents a date range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AnalyzeTrends analyzes session-over-session trends. Sessions in which the
// player made no timed rotations are counted in the window but left out of
// every average.
func AnalyzeTrends(points []TrendPoint) *TrendReport {
	report := &TrendReport{
		WindowSize: len(points),
		RollingTPS: make(map[int]float64),
		Sessions:   []TrendPoint{},
	}
	if len(points) == 0 {
		return report
	}

	sorted := make([]TrendPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	report.DateRange = DateRange{
		Start: sorted[0].StartedAt.Format(time.RFC3339),
		End:   sorted[len(sorted)-1].StartedAt.Format(time.RFC3339),
	}

	var active []TrendPoint
	for _, p := range sorted {
		if p.Rotations == 0 || p.DurationMs <= 0 {
			continue
		}
		active = append(active, p)
	}
	report.ActiveSessions = len(active)
	report.Sessions = append(report.Sessions, active...)
	if len(active) == 0 {
		return report
	}

	tps := make([]float64, len(active))
	var rotations int
	var cancel float64
	best, worst := active[0], active[0]
	for i, p := range active {
		tps[i] = p.TPS
		rotations += p.Rotations
		cancel += p.CancellationRate
		if p.TPS > best.TPS {
			best = p
		}
		if p.TPS < worst.TPS {
			worst = p
		}
	}

	n := float64(len(active))
	report.AvgRotations = float64(rotations) / n
	report.AvgTPS = mean(tps)
	report.AvgCancellationRate = cancel / n
	report.Best, report.Worst = &best, &worst

	report.TPSChangePct = calculateChange(tps)
	report.ConsistencyScore = calculateConsistency(tps)

	for _, w := range []int{5, 10, 25, 50} {
		if len(tps) >= w {
			report.RollingTPS[w] = mean(tps[len(tps)-w:])
		}
	}

	return report
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateChange compares the mean of the last quarter of values with the
// first quarter, in percent of the first.
func calculateChange(values []float64) float64 {
	if len(values) < 4 {
		return 0
	}
	q := len(values) / 4

	first := mean(values[:q])
	last := mean(values[len(values)-q:])
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}

// calculateConsistency maps the coefficient of variation onto 0-100: a CV
// of 0 scores 100 and a CV of 1 or more scores 0.
func calculateConsistency(values []float64) float64 {
	if len(values) < 2 {
		return 100
	}

	m := mean(values)
	if m <= 0 {
		return 100
	}

	var sumSquares float64
	for _, v := range values {
		sumSquares += (v - m) * (v - m)
	}
	cv := math.Sqrt(sumSquares/float64(len(values))) / m

	return math.Max(0, math.Min(100, 100-cv*100))
}
