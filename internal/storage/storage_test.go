package storage

import (
	"path/filepath"
	"testing"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, "test.db", filepath.Base(db.Path()))
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = NewSessionRepository(db).Create("play", "", false)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	sessions, err := NewSessionRepository(db).List(10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	n, err := NewSessionRepository(db).Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListWithoutLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	for i := 0; i < 3; i++ {
		_, err := repo.Create("simulate", "", false)
		require.NoError(t, err)
	}

	all, err := repo.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, some, 2)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create("play", "1.0.0", true)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, err := repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "play", s.Host)
	assert.True(t, s.LegacyShuffle)
	require.NotNil(t, s.AppVersion)
	assert.Equal(t, "1.0.0", *s.AppVersion)
	assert.Nil(t, s.EndedAt)

	require.NoError(t, repo.End(id))
	s, err = repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s.EndedAt)
	require.NotNil(t, s.DurationMs)
	assert.GreaterOrEqual(t, *s.DurationMs, int64(0))

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, id, last.SessionID)

	missing, err := repo.Get("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRotationsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("simulate", "", false)
	require.NoError(t, err)

	repo := NewRotationRepository(db)
	rots := []ravenscube.Rotation{
		{Seq: 1, Move: ravenscube.R, Source: ravenscube.SourceFace},
		{Seq: 2, Move: ravenscube.Move{Axis: ravenscube.AxisY, Layer: 0, Dir: ravenscube.CCW}, Source: ravenscube.SourceShuffle},
	}
	_, err = repo.Create(id, 10, rots[0])
	require.NoError(t, err)
	require.NoError(t, repo.CreateBatch(id, []TimedRotation{{TsMs: 20, Rotation: rots[1]}}))
	require.NoError(t, repo.CreateBatch(id, nil))

	records, err := repo.GetBySession(id)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, uint64(1), records[0].Seq)
	assert.Equal(t, "R", records[0].Notation)
	assert.Equal(t, "face", records[0].Source)
	assert.Equal(t, "E'", records[1].Notation)

	moves := ToMoves(records)
	assert.Equal(t, []ravenscube.Move{rots[0].Move, rots[1].Move}, moves)

	n, err := repo.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bySource, err := repo.CountBySource()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"face": 1, "shuffle": 1}, bySource)
}

func TestCreateBatchIsAtomic(t *testing.T) {
	db := openTestDB(t)
	repo := NewRotationRepository(db)

	err := repo.CreateBatch("no-such-session", []TimedRotation{
		{TsMs: 1, Rotation: ravenscube.Rotation{Seq: 1, Move: ravenscube.R}},
		{TsMs: 2, Rotation: ravenscube.Rotation{Seq: 2, Move: ravenscube.U}},
	})
	require.Error(t, err)

	n, err := repo.Count("no-such-session")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRotationRecordMoveRejectsBadRows(t *testing.T) {
	_, err := RotationRecord{Axis: "w", Layer: 0, Dir: 1}.Move()
	assert.ErrorIs(t, err, ravenscube.ErrInvalidAxis)

	_, err = RotationRecord{Axis: "x", Layer: 3, Dir: 1}.Move()
	assert.ErrorIs(t, err, ravenscube.ErrInvalidMove)
}

func TestEventsAndCascade(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	id, err := sessions.Create("play", "", false)
	require.NoError(t, err)

	events := NewEventRepository(db)
	_, err = events.Create(id, 0, EventOpen, "play")
	require.NoError(t, err)
	_, err = events.Create(id, 5, EventSolved, "")
	require.NoError(t, err)
	_, err = NewRotationRepository(db).Create(id, 3, ravenscube.Rotation{Seq: 1, Move: ravenscube.F})
	require.NoError(t, err)

	all, err := events.GetBySession(id)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, EventOpen, all[0].EventType)
	require.NotNil(t, all[0].Detail)
	assert.Nil(t, all[1].Detail)

	solved, err := events.GetByType(id, EventSolved)
	require.NoError(t, err)
	assert.Len(t, solved, 1)

	n, err := events.CountByType(EventSolved)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, sessions.Delete(id))
	all, err = events.GetBySession(id)
	require.NoError(t, err)
	assert.Empty(t, all)
	count, err := NewRotationRepository(db).Count(id)
	require.NoError(t, err)
	assert.Zero(t, count)
}
