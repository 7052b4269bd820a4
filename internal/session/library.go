// Package session holds reading state: the app-wide Library (chapter list and
// last-read bookmark) and the per-screen reading Controller.
package session

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/justyntemme/warad-t/pkg/models"
)

// ChapterLister fetches the chapter list.
type ChapterLister interface {
	ListChapters(ctx context.Context) ([]models.Chapter, error)
}

// BookmarkStore persists the last-read bookmark.
type BookmarkStore interface {
	Read(ctx context.Context) (models.Bookmark, bool)
	Write(ctx context.Context, b models.Bookmark) error
}

// Library is the application-wide reading context. It is created once at
// startup and shared by every screen.
type Library struct {
	client ChapterLister
	store  BookmarkStore
	logger *slog.Logger

	mu       sync.RWMutex
	chapters []models.Chapter
	err      error
	lastRead *models.Bookmark

	// writeMu keeps the cached bookmark in step with the store when writes race.
	writeMu sync.Mutex
}

// NewLibrary creates an empty library. Call Load before use.
func NewLibrary(client ChapterLister, store BookmarkStore, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Library{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Load reads the saved bookmark and fetches the chapter list. The returned
// error is the chapter list failure, if any; a missing bookmark is not an error.
func (l *Library) Load(ctx context.Context) error {
	l.LoadBookmark(ctx)
	return l.ReloadChapters(ctx)
}

// LoadBookmark reads the saved bookmark into the cache. It reports whether one
// was found.
func (l *Library) LoadBookmark(ctx context.Context) bool {
	b, ok := l.store.Read(ctx)
	if !ok {
		return false
	}
	l.mu.Lock()
	l.lastRead = &b
	l.mu.Unlock()
	return true
}

// ReloadChapters fetches the chapter list again.
func (l *Library) ReloadChapters(ctx context.Context) error {
	chapters, err := l.client.ListChapters(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.logger.Error("failed to load surahs", "error", err)
		l.err = err
		return err
	}
	l.chapters = chapters
	l.err = nil
	l.logger.Info("surahs loaded", "count", len(chapters))
	return nil
}

// Chapters returns a copy of the chapter list.
func (l *Library) Chapters() []models.Chapter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.chapters)
}

// Chapter looks up a chapter by id.
func (l *Library) Chapter(id int) (models.Chapter, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, ch := range l.chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return models.Chapter{}, false
}

// Err returns the last chapter list failure, or nil.
func (l *Library) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// LastRead returns the cached bookmark.
func (l *Library) LastRead() (models.Bookmark, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.lastRead == nil {
		return models.Bookmark{}, false
	}
	return *l.lastRead, true
}

// SetLastRead writes the bookmark through to the store. The cached copy only
// changes when the write succeeds.
func (l *Library) SetLastRead(ctx context.Context, b models.Bookmark) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.store.Write(ctx, b); err != nil {
		l.logger.Error("failed to save last read position", "error", err)
		return err
	}

	l.mu.Lock()
	l.lastRead = &b
	l.mu.Unlock()
	return nil
}
