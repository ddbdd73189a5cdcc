package ravenscube

import "time"

// Shuffle performs a fixed number of random layer rotations. Axis, layer
// (including the middle slice) and direction are drawn independently and
// uniformly.
//
// By default each step starts only after the previous one has settled, plus
// whatever part of the shuffle interval exceeds the animation duration. With
// WithLegacyShuffle the steps fire on a fixed interval instead, clearing the
// busy flag before each one.
//
// A shuffle cannot be stopped except by Reset or Close. While it runs, other
// rotation commands are rejected as busy.
func (e *Engine) Shuffle() Result {
	e.mu.Lock()
	if !e.open || e.tracker == nil {
		e.mu.Unlock()
		return RejectedClosed
	}
	if e.busyLocked() {
		e.mu.Unlock()
		e.cfg.logger.Debug("shuffle rejected", "result", RejectedBusy)
		return RejectedBusy
	}

	moves := make([]Move, e.cfg.shuffleMoves)
	for i := range moves {
		moves[i] = e.randomMoveLocked()
	}
	e.cfg.logger.Debug("shuffle started", "moves", FormatMoves(moves), "legacy", e.cfg.legacyShuffle)

	var effects []effect
	switch {
	case len(moves) == 0:
		if cb := e.onShuffleDone; cb != nil {
			effects = append(effects, cb)
		}
	case e.cfg.legacyShuffle:
		e.shuffle = &shuffleRun{remaining: moves, legacy: true}
		effects = append(effects, e.legacyStepLocked()...)
		for i := 1; i < len(moves); i++ {
			effects = append(effects, e.scheduleLocked(time.Duration(i)*e.cfg.shuffleInterval, e.legacyStepLocked))
		}
	default:
		e.shuffle = &shuffleRun{remaining: moves}
		effects = append(effects, e.shuffleStepLocked()...)
	}
	e.mu.Unlock()

	runEffects(effects)
	return Accepted
}

func (e *Engine) randomMoveLocked() Move {
	r := e.cfg.rand
	dir := CW
	if r.Intn(2) == 0 {
		dir = CCW
	}
	return Move{
		Axis:  Axis(r.Intn(3)),
		Layer: r.Intn(3) - 1,
		Dir:   dir,
	}
}

// shuffleStepLocked starts the next queued shuffle rotation.
func (e *Engine) shuffleStepLocked() []effect {
	if e.shuffle == nil || len(e.shuffle.remaining) == 0 {
		return nil
	}
	m := e.shuffle.remaining[0]
	e.shuffle.remaining = e.shuffle.remaining[1:]
	_, effects := e.startLocked(m, SourceShuffle)
	return effects
}

// legacyStepLocked clears the busy flag and starts the next shuffle
// rotation whether or not the previous one has settled.
func (e *Engine) legacyStepLocked() []effect {
	e.animating = false
	return e.shuffleStepLocked()
}

// continueShuffleLocked runs after a shuffle rotation settles.
func (e *Engine) continueShuffleLocked() []effect {
	run := e.shuffle
	if run == nil {
		return nil
	}

	if len(run.remaining) == 0 {
		if e.pending > 0 {
			return nil
		}
		e.shuffle = nil
		e.cfg.logger.Debug("shuffle done")
		if cb := e.onShuffleDone; cb != nil {
			return []effect{cb}
		}
		return nil
	}
	if run.legacy {
		return nil
	}

	gap := e.cfg.shuffleInterval - e.cfg.animationDuration
	if gap <= 0 {
		return e.shuffleStepLocked()
	}
	return []effect{e.scheduleLocked(gap, e.shuffleStepLocked)}
}
