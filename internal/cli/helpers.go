package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/SeamusWaldron/ravenscube/internal/recorder"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

// openDB opens the journal database from the flag, config or default path.
func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// startJournal opens the database and starts a session attached to e. It
// returns a nil session when journaling is disabled. The returned closer
// ends the session and closes the database.
func startJournal(e *ravenscube.Engine, host string, logger *slog.Logger) (*recorder.Session, func(), error) {
	c := loadedConfig()
	if !c.JournalEnabled {
		return nil, func() {}, nil
	}

	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	session := recorder.NewSession(db, logger)
	if _, err := session.Start(host, version, c.LegacyShuffle); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to start session: %w", err)
	}
	session.Attach(e)

	closer := func() {
		if err := session.End(); err != nil {
			logger.Warn("failed to end session", "error", err)
		}
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	return session, closer, nil
}

// journal records a host command outcome, ignoring a nil session.
func journal(s *recorder.Session, command string, res ravenscube.Result, logger *slog.Logger) {
	if s == nil {
		return
	}
	if err := s.RecordResult(command, res); err != nil {
		logger.Warn("journal command failed", "command", command, "error", err)
	}
}

// journalEvent records a lifecycle event, ignoring a nil session.
func journalEvent(s *recorder.Session, eventType string, logger *slog.Logger) {
	if s == nil {
		return
	}
	if err := s.RecordEvent(eventType, ""); err != nil {
		logger.Warn("journal event failed", "event", eventType, "error", err)
	}
}

// openLogFile opens ~/.ravenscube/ravenscube.log for appending.
func openLogFile() (*os.File, error) {
	dir, err := storage.DataDir()
	if err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "ravenscube.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
