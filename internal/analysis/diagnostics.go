package analysis

import (
	"math"

	"github.com/SeamusWaldron/ravenscube"
)

// Diagnostics describes the flow of a player's rotations in one session.
type Diagnostics struct {
	Rotations int `json:"rotations"`

	// X followed directly by X'
	Reversals int `json:"reversals"`
	// Four identical quarter turns in a row
	FullCycles int `json:"full_cycles"`

	// Shannon entropy of the layer distribution in bits. Nine layers can be
	// turned, so the maximum is log2(9).
	LayerEntropy   float64 `json:"layer_entropy"`
	DistinctLayers int     `json:"distinct_layers"`
	BusiestLayer   string  `json:"busiest_layer,omitempty"`

	AvgGapMs       float64 `json:"avg_gap_ms"`
	MinGapMs       int64   `json:"min_gap_ms"`
	MaxGapMs       int64   `json:"max_gap_ms"`
	GapsOver750ms  int     `json:"gaps_over_750ms"`
	GapsOver1500ms int     `json:"gaps_over_1500ms"`
	GapsOver3000ms int     `json:"gaps_over_3000ms"`
}

// MaxLayerEntropy is the entropy of rotations spread evenly over all nine
// layers.
var MaxLayerEntropy = math.Log2(9)

// Diagnose computes flow diagnostics for a sequence of player rotations.
func Diagnose(moves []TimedMove) *Diagnostics {
	d := &Diagnostics{Rotations: len(moves)}
	d.Reversals, d.FullCycles = countReversals(moves)
	d.LayerEntropy, d.DistinctLayers, d.BusiestLayer = layerEntropy(moves)
	analyzeGaps(moves, d)
	return d
}

// countReversals counts immediate undos and full four-turn cycles.
func countReversals(moves []TimedMove) (reversals, fullCycles int) {
	for i := 1; i < len(moves); i++ {
		if moves[i].Move == moves[i-1].Move.Inverse() {
			reversals++
		}
	}

	for i := 3; i < len(moves); i++ {
		m := moves[i].Move
		if moves[i-1].Move == m && moves[i-2].Move == m && moves[i-3].Move == m {
			fullCycles++
		}
	}
	return reversals, fullCycles
}

type layerKey struct {
	axis  ravenscube.Axis
	layer int
}

// layerName names a layer by its notation letter, e.g. R for x=1 and M
// for x=0.
func layerName(k layerKey) string {
	m := ravenscube.Move{Axis: k.axis, Layer: k.layer, Dir: ravenscube.CW}
	n := m.Notation()
	return n[:1]
}

// layerEntropy reports how evenly rotations are spread across layers.
// High entropy means lots of switching between layers, low entropy means
// work concentrated on a few.
func layerEntropy(moves []TimedMove) (entropy float64, distinct int, busiest string) {
	if len(moves) == 0 {
		return 0, 0, ""
	}

	counts := make(map[layerKey]int)
	for _, tm := range moves {
		counts[layerKey{tm.Move.Axis, tm.Move.Layer}]++
	}

	total := float64(len(moves))
	best := 0
	var bestKey layerKey
	for k, n := range counts {
		p := float64(n) / total
		entropy -= p * math.Log2(p)
		if n > best || (n == best && layerName(k) < layerName(bestKey)) {
			best, bestKey = n, k
		}
	}
	return entropy, len(counts), layerName(bestKey)
}

// analyzeGaps fills the timing fields from the gaps between rotations.
func analyzeGaps(moves []TimedMove, d *Diagnostics) {
	if len(moves) < 2 {
		return
	}

	var total int64
	d.MinGapMs = moves[1].TsMs - moves[0].TsMs
	d.MaxGapMs = d.MinGapMs

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		total += gap
		d.MinGapMs = min(d.MinGapMs, gap)
		d.MaxGapMs = max(d.MaxGapMs, gap)

		switch {
		case gap > 3000:
			d.GapsOver3000ms++
			fallthrough
		case gap > 1500:
			d.GapsOver1500ms++
			fallthrough
		case gap > 750:
			d.GapsOver750ms++
		}
	}

	d.AvgGapMs = float64(total) / float64(len(moves)-1)
}
