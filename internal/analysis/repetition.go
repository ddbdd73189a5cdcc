package analysis

import (
	"github.com/SeamusWaldron/ravenscube"
)

// Cancellation is a rotation immediately undone by the next one.
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
	TsMs   int64  `json:"ts_ms"`
}

// BackAndForthPattern represents alternating moves (e.g., R U R U R U).
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
	TsMs       int64    `json:"ts_ms"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// AnalyzeRepetitions analyzes a move sequence for wasted motion.
func AnalyzeRepetitions(moves []TimedMove) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}

	if len(moves) < 2 {
		return report
	}

	for i := 0; i < len(moves)-1; i++ {
		m1, m2 := moves[i].Move, moves[i+1].Move
		if m1.Inverse() == m2 {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Notation(),
				Move2:  m2.Notation(),
				TsMs:   moves[i].TsMs,
			})
			report.TotalWastedMoves += 2
		}
	}

	report.BackAndForthPatterns = findBackAndForth(moves)

	return report
}

// findBackAndForth finds alternating move patterns like R U R U R U.
func findBackAndForth(moves []TimedMove) []BackAndForthPattern {
	var patterns []BackAndForthPattern

	if len(moves) < 4 {
		return patterns
	}

	i := 0
	for i < len(moves)-3 {
		a, b := moves[i].Move, moves[i+1].Move
		if a == b {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j < len(moves)-1 && moves[j].Move == a && moves[j+1].Move == b {
			count++
			j += 2
		}

		// Three repetitions before it is worth reporting
		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
				TsMs:       moves[i].TsMs,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

// OptimizeMoves merges consecutive turns of the same layer and drops the
// ones that cancel. The result has the same effect on the cube.
func OptimizeMoves(moves []ravenscube.Move) []ravenscube.Move {
	type run struct {
		axis  ravenscube.Axis
		layer int
		net   int // quarter turns in the CW direction, mod 4
	}

	var runs []run
	for _, m := range moves {
		if n := len(runs); n > 0 && runs[n-1].axis == m.Axis && runs[n-1].layer == m.Layer {
			runs[n-1].net = (runs[n-1].net + int(m.Dir) + 4) % 4
			if runs[n-1].net == 0 {
				runs = runs[:n-1]
			}
			continue
		}
		runs = append(runs, run{axis: m.Axis, layer: m.Layer, net: (int(m.Dir) + 4) % 4})
	}

	result := make([]ravenscube.Move, 0, len(moves))
	for _, r := range runs {
		cw := ravenscube.Move{Axis: r.axis, Layer: r.layer, Dir: ravenscube.CW}
		switch r.net {
		case 1:
			result = append(result, cw)
		case 2:
			result = append(result, cw, cw)
		case 3:
			result = append(result, cw.Inverse())
		}
	}
	return result
}

// CalculateEfficiency calculates the efficiency ratio (optimized/original).
func CalculateEfficiency(original, optimized []ravenscube.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}
