package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/ravenscube"
)

// RotationRecord is a committed layer rotation in the journal.
type RotationRecord struct {
	RotationID int64
	SessionID  string
	Seq        uint64
	TsMs       int64
	Axis       string
	Layer      int
	Dir        int
	Notation   string
	Source     string
}

// Move converts the record back to a move.
func (r RotationRecord) Move() (ravenscube.Move, error) {
	axis, err := ravenscube.ParseAxis(r.Axis)
	if err != nil {
		return ravenscube.Move{}, err
	}
	m := ravenscube.Move{Axis: axis, Layer: r.Layer, Dir: ravenscube.Direction(r.Dir)}
	return m, m.Validate()
}

// RotationRepository provides CRUD operations for rotations.
type RotationRepository struct {
	db *DB
}

// NewRotationRepository creates a new rotation repository.
func NewRotationRepository(db *DB) *RotationRepository {
	return &RotationRepository{db: db}
}

const insertRotation = `
	INSERT INTO rotations (session_id, seq, ts_ms, axis, layer, dir, notation, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertRotationWith(x execer, sessionID string, tsMs int64, rot ravenscube.Rotation) (sql.Result, error) {
	m := rot.Move
	return x.Exec(insertRotation, sessionID, int64(rot.Seq), tsMs,
		m.Axis.String(), m.Layer, int(m.Dir), m.Notation(), rot.Source.String())
}

// Create records a settled rotation and returns its ID.
func (r *RotationRepository) Create(sessionID string, tsMs int64, rot ravenscube.Rotation) (int64, error) {
	result, err := insertRotationWith(r.db, sessionID, tsMs, rot)
	if err != nil {
		return 0, fmt.Errorf("failed to create rotation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get rotation ID: %w", err)
	}
	return id, nil
}

// TimedRotation is a settled rotation and its offset from session start.
type TimedRotation struct {
	TsMs     int64
	Rotation ravenscube.Rotation
}

// CreateBatch records several rotations in a single transaction. Either all
// of them are stored or none are.
func (r *RotationRepository) CreateBatch(sessionID string, rots []TimedRotation) error {
	if len(rots) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, tr := range rots {
			if _, err := insertRotationWith(tx, sessionID, tr.TsMs, tr.Rotation); err != nil {
				return fmt.Errorf("failed to create rotation %d: %w", tr.Rotation.Seq, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all rotations for a session in commit order.
func (r *RotationRepository) GetBySession(sessionID string) ([]RotationRecord, error) {
	rows, err := r.db.Query(`
		SELECT rotation_id, session_id, seq, ts_ms, axis, layer, dir, notation, source
		FROM rotations
		WHERE session_id = ?
		ORDER BY rotation_id
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get rotations: %w", err)
	}
	defer rows.Close()

	var records []RotationRecord
	for rows.Next() {
		var rec RotationRecord
		var seq int64
		err := rows.Scan(&rec.RotationID, &rec.SessionID, &seq, &rec.TsMs, &rec.Axis, &rec.Layer, &rec.Dir, &rec.Notation, &rec.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rotation: %w", err)
		}
		rec.Seq = uint64(seq)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the number of rotations for a session.
func (r *RotationRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM rotations WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rotations: %w", err)
	}
	return count, nil
}

// CountBySource returns rotation counts per source ("api", "face",
// "shuffle") across all sessions.
func (r *RotationRepository) CountBySource() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT source, COUNT(*) FROM rotations GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to count rotations by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("failed to scan rotation count: %w", err)
		}
		counts[source] = n
	}
	return counts, rows.Err()
}

// ToMoves converts records to moves, skipping any that no longer parse.
func ToMoves(records []RotationRecord) []ravenscube.Move {
	moves := make([]ravenscube.Move, 0, len(records))
	for _, rec := range records {
		if m, err := rec.Move(); err == nil {
			moves = append(moves, m)
		}
	}
	return moves
}
