// Package bookmark persists the single last-read position.
package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/justyntemme/warad-t/pkg/models"
)

// lastReadKey is the namespaced key of the singleton record.
var lastReadKey = []byte("warad:lastRead")

// PersistenceError reports a failed bookmark write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("bookmark %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store wraps a Badger database holding the last-read bookmark.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the bookmark database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	return open(opts, logger)
}

// OpenInMemory opens a store that keeps nothing on disk.
func OpenInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*Store, error) {
	opts.Logger = nil      // Badger's own logging would draw over the TUI
	opts.SyncWrites = true // bookmark must survive a crash right after writing

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("bookmark database opened", "path", opts.Dir, "in_memory", opts.InMemory)

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns the saved bookmark. A missing, unreadable or malformed record
// reads as absent.
func (s *Store) Read(ctx context.Context) (models.Bookmark, bool) {
	var b models.Bookmark
	if err := ctx.Err(); err != nil {
		return b, false
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(lastReadKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &b)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Bookmark{}, false
	}
	if err != nil {
		s.logger.Warn("failed to load last read position", "error", err)
		return models.Bookmark{}, false
	}
	if !b.IsValid() {
		s.logger.Warn("ignoring invalid last read position", "bookmark", b)
		return models.Bookmark{}, false
	}
	return b, true
}

// Write replaces the saved bookmark. The record is written in a single
// transaction, so on failure the previous bookmark is still what Read returns.
func (s *Store) Write(ctx context.Context, b models.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}

	data, err := json.Marshal(b)
	if err != nil {
		return &PersistenceError{Op: "write", Err: fmt.Errorf("marshal: %w", err)}
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(lastReadKey, data)
	})
	if err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}

	s.logger.Debug("last read position saved",
		"chapter", b.ChapterID,
		"verse", b.VerseNumber,
	)
	return nil
}
