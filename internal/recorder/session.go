// Package recorder journals widget sessions into the storage database.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

// ErrNotRecording is returned when an event arrives outside a session.
var ErrNotRecording = errors.New("recorder: no session in progress")

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session journals one widget session: open, every committed rotation,
// shuffles, solves and rejected commands, then close.
type Session struct {
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	state     SessionState
	sessionID string
	startTime time.Time
	rotations int

	// Shuffle steps are held here and written in one transaction when the
	// shuffle ends or anything else is journaled.
	shuffleBuf []storage.TimedRotation

	sessionRepo  *storage.SessionRepository
	rotationRepo *storage.RotationRepository
	eventRepo    *storage.EventRepository
}

// NewSession creates a new session journal. A nil logger discards output.
func NewSession(db *storage.DB, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		logger:       logger,
		now:          time.Now,
		state:        StateIdle,
		sessionRepo:  storage.NewSessionRepository(db),
		rotationRepo: storage.NewRotationRepository(db),
		eventRepo:    storage.NewEventRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// RotationCount returns the number of rotations written to the journal so
// far. Buffered shuffle steps are not counted until they are flushed.
func (s *Session) RotationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotations
}

// Start creates the session row and records the open event.
func (s *Session) Start(host, appVersion string, legacyShuffle bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("session already in progress")
	}

	id, err := s.sessionRepo.Create(host, appVersion, legacyShuffle)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.startTime = s.now()
	s.rotations = 0
	s.shuffleBuf = nil
	s.state = StateRecording

	if _, err := s.eventRepo.Create(id, 0, storage.EventOpen, host); err != nil {
		return id, fmt.Errorf("failed to record open: %w", err)
	}

	s.logger.Debug("journal session started", "session_id", id, "host", host)
	return id, nil
}

// End records the close event and marks the session ended.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.flushLocked(); err != nil {
		return err
	}
	if _, err := s.eventRepo.Create(s.sessionID, s.elapsedLocked(), storage.EventClose, ""); err != nil {
		return fmt.Errorf("failed to record close: %w", err)
	}
	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded
	s.logger.Debug("journal session ended", "session_id", s.sessionID, "rotations", s.rotations)
	return nil
}

func (s *Session) elapsedLocked() int64 {
	return s.now().Sub(s.startTime).Milliseconds()
}

// flushLocked writes buffered shuffle steps.
func (s *Session) flushLocked() error {
	if len(s.shuffleBuf) == 0 {
		return nil
	}
	buf := s.shuffleBuf
	s.shuffleBuf = nil
	if err := s.rotationRepo.CreateBatch(s.sessionID, buf); err != nil {
		return fmt.Errorf("failed to store %d shuffle rotations: %w", len(buf), err)
	}
	s.rotations += len(buf)
	return nil
}

// RecordRotation journals a settled rotation. Shuffle steps are buffered
// until the shuffle finishes.
func (s *Session) RecordRotation(rot ravenscube.Rotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	ts := s.elapsedLocked()
	if rot.Source == ravenscube.SourceShuffle {
		s.shuffleBuf = append(s.shuffleBuf, storage.TimedRotation{TsMs: ts, Rotation: rot})
		return nil
	}

	if err := s.flushLocked(); err != nil {
		return err
	}
	if _, err := s.rotationRepo.Create(s.sessionID, ts, rot); err != nil {
		return fmt.Errorf("failed to store rotation: %w", err)
	}
	s.rotations++
	return nil
}

// RecordEvent journals a lifecycle event.
func (s *Session) RecordEvent(eventType, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	if err := s.flushLocked(); err != nil {
		return err
	}
	if _, err := s.eventRepo.Create(s.sessionID, s.elapsedLocked(), eventType, detail); err != nil {
		return fmt.Errorf("failed to store %s event: %w", eventType, err)
	}
	return nil
}

// RecordResult journals the outcome of a host command. Accepted shuffles
// become shuffle_start events and rejections become rejected events;
// anything else is not journaled.
func (s *Session) RecordResult(command string, res ravenscube.Result) error {
	switch {
	case res == ravenscube.Accepted && command == "shuffle":
		return s.RecordEvent(storage.EventShuffleStart, "")
	case res == ravenscube.RejectedBusy, res == ravenscube.RejectedInvalid, res == ravenscube.RejectedClosed:
		return s.RecordEvent(storage.EventRejected, command+": "+res.String())
	}
	return nil
}

// Attach registers the session as the engine's settle, solved and
// shuffle-done handler. Journal errors are logged; they never reach the
// engine.
func (s *Session) Attach(e *ravenscube.Engine) {
	e.OnSettle(func(rot ravenscube.Rotation) {
		if err := s.RecordRotation(rot); err != nil {
			s.logger.Warn("journal rotation failed", "move", rot.Move.Notation(), "error", err)
		}
	})
	e.OnSolved(func() {
		if err := s.RecordEvent(storage.EventSolved, ""); err != nil {
			s.logger.Warn("journal solve failed", "error", err)
		}
	})
	e.OnShuffleDone(func() {
		if err := s.RecordEvent(storage.EventShuffleDone, ""); err != nil {
			s.logger.Warn("journal shuffle failed", "error", err)
		}
	})
}
