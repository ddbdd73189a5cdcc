package storage

import (
	"fmt"
)

// Event types written by the recorder.
const (
	EventOpen         = "open"
	EventReset        = "reset"
	EventClose        = "close"
	EventShuffleStart = "shuffle_start"
	EventShuffleDone  = "shuffle_done"
	EventSolved       = "solved"
	EventRejected     = "rejected"
)

// Event is a session lifecycle event in the journal.
type Event struct {
	EventID   int64
	SessionID string
	TsMs      int64
	EventType string
	Detail    *string
}

// EventRepository provides CRUD operations for events.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event and returns its ID. An empty detail is stored
// as NULL.
func (r *EventRepository) Create(sessionID string, tsMs int64, eventType, detail string) (int64, error) {
	var detailPtr *string
	if detail != "" {
		detailPtr = &detail
	}

	result, err := r.db.Exec(`
		INSERT INTO events (session_id, ts_ms, event_type, detail)
		VALUES (?, ?, ?, ?)
	`, sessionID, tsMs, eventType, detailPtr)

	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}

	return id, nil
}

// GetBySession retrieves all events for a session.
func (r *EventRepository) GetBySession(sessionID string) ([]Event, error) {
	return r.query(`
		SELECT event_id, session_id, ts_ms, event_type, detail
		FROM events
		WHERE session_id = ?
		ORDER BY ts_ms, event_id
	`, sessionID)
}

// GetByType retrieves all events of a specific type for a session.
func (r *EventRepository) GetByType(sessionID, eventType string) ([]Event, error) {
	return r.query(`
		SELECT event_id, session_id, ts_ms, event_type, detail
		FROM events
		WHERE session_id = ? AND event_type = ?
		ORDER BY ts_ms, event_id
	`, sessionID, eventType)
}

func (r *EventRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.EventID, &e.SessionID, &e.TsMs, &e.EventType, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByType returns how many events of eventType exist across all
// sessions.
func (r *EventRepository) CountByType(eventType string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE event_type = ?", eventType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
