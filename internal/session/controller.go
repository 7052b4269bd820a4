package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/justyntemme/warad-t/internal/audio"
	"github.com/justyntemme/warad-t/pkg/models"
)

var (
	// ErrSuperseded is returned by Open when a newer Open (or Close) made the result stale.
	ErrSuperseded = errors.New("session: chapter load superseded")
	// ErrClosed is returned for play requests after Close.
	ErrClosed = errors.New("session: controller closed")
	// ErrUnknownChapter means the chapter list has no entry to name the bookmark with.
	ErrUnknownChapter = errors.New("session: chapter not in library")
)

const loadFailedMessage = "Failed to load surah details. Please try again later."

// VerseLoader fetches the verses of a chapter.
type VerseLoader interface {
	LoadChapterVerses(ctx context.Context, chapterID int) ([]models.Verse, error)
}

// Player is the audio slot as seen by a controller.
type Player interface {
	Toggle(ctx context.Context, verseID int, uri string) (audio.Status, error)
	Status() audio.Status
	Release()
}

// LoadStatus is the loading state of a chapter screen
type LoadStatus int

const (
	StatusLoading LoadStatus = iota
	StatusReady
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a controller. Verses must not be modified.
type State struct {
	ChapterID  int
	Chapter    models.Chapter
	HasChapter bool

	Verses  []models.Verse
	Status  LoadStatus
	Message string // set when Status is StatusFailed

	SelectedVerse int // verse number, 0 when nothing is selected
	ActiveVerseID int // verse id loaded in the audio slot, 0 when none

	Playback audio.Status
	Notice   string // dismissible playback error
}

// Controller owns the state of one chapter screen: it loads verses, drives
// the audio slot and records the last-read position.
type Controller struct {
	id      string
	library *Library
	loader  VerseLoader
	player  Player
	logger  *slog.Logger

	// ctx is cancelled by Close so an audio open in flight gives up.
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	chapterID int
	verses    []models.Verse
	status    LoadStatus
	message   string
	selected  int
	activeID  int
	notice    string
	gen       uint64
	closed    bool

	// playMu orders play requests against Close so nothing starts after release.
	playMu sync.Mutex
}

// NewController creates a controller for one screen visit.
func NewController(library *Library, loader VerseLoader, player Player, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		id:      id,
		library: library,
		loader:  loader,
		player:  player,
		logger:  logger.With("session", id),
		ctx:     ctx,
		cancel:  cancel,
		status:  StatusLoading,
	}
}

// ID returns the session id used in logs.
func (c *Controller) ID() string {
	return c.id
}

// Open loads the verses of chapterID. Only the most recent call may update
// the state; an older call that finishes later returns ErrSuperseded.
func (c *Controller) Open(ctx context.Context, chapterID int) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.chapterID = chapterID
	c.status = StatusLoading
	c.verses = nil
	c.message = ""
	c.selected = 0
	c.mu.Unlock()

	ctx, stop := c.bind(ctx)
	defer stop()
	verses, err := c.loader.LoadChapterVerses(ctx, chapterID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("discarding stale chapter load", "chapter", chapterID)
		return ErrSuperseded
	}
	if err != nil {
		c.logger.Error("failed to load surah details", "chapter", chapterID, "error", err)
		c.status = StatusFailed
		c.message = loadFailedMessage
		return err
	}

	c.verses = verses
	c.status = StatusReady
	c.logger.Info("surah loaded", "chapter", chapterID, "verses", len(verses))
	return nil
}

// RequestPlay plays verse, or stops it if it is the verse already playing.
// Starting playback selects the verse and saves it as last read; a failed
// save is only logged. A playback failure sets the notice and is returned.
// Close aborts a request still opening its audio; it then returns ErrClosed.
func (c *Controller) RequestPlay(ctx context.Context, verse models.Verse) error {
	c.playMu.Lock()
	defer c.playMu.Unlock()

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	ctx, stop := c.bind(ctx)
	defer stop()
	st, err := c.player.Toggle(ctx, verse.ID, verse.AudioURL)

	c.mu.Lock()
	if c.closed {
		// Close is waiting on playMu and releases the slot next.
		c.mu.Unlock()
		c.logger.Debug("play request ended after close", "verse", verse.Key)
		return ErrClosed
	}
	if err != nil {
		c.activeID = 0
		c.notice = st.Message
		if c.notice == "" {
			c.notice = err.Error()
		}
		c.mu.Unlock()
		return err
	}

	playing := st.State == audio.StatePlaying
	switch st.State {
	case audio.StatePlaying:
		c.selected = verse.Number
		c.activeID = verse.ID
		c.notice = ""
	case audio.StateIdle:
		// The selection stays highlighted after stopping.
		c.activeID = 0
	}
	c.mu.Unlock()

	if playing {
		_ = c.saveLastRead(ctx, verse)
	}
	return nil
}

// Bookmark saves verse as last read without touching playback.
func (c *Controller) Bookmark(ctx context.Context, verse models.Verse) error {
	return c.saveLastRead(ctx, verse)
}

// DismissNotice clears the playback error notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = ""
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	pb := c.player.Status()

	c.mu.Lock()
	defer c.mu.Unlock()

	// The track may have ended on its own since the last request.
	if c.activeID != 0 && !pb.IsActive(c.activeID) {
		c.activeID = 0
	}

	st := State{
		ChapterID:     c.chapterID,
		Verses:        c.verses,
		Status:        c.status,
		Message:       c.message,
		SelectedVerse: c.selected,
		ActiveVerseID: c.activeID,
		Playback:      pb,
		Notice:        c.notice,
	}
	st.Chapter, st.HasChapter = c.library.Chapter(c.chapterID)
	return st
}

// Close cancels any load or audio open in flight, then releases the audio
// slot. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++
	c.activeID = 0
	c.mu.Unlock()

	c.cancel()
	c.playMu.Lock()
	defer c.playMu.Unlock()
	c.player.Release()
}

// bind derives a context from ctx that is also cancelled by Close.
func (c *Controller) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (c *Controller) saveLastRead(ctx context.Context, verse models.Verse) error {
	ch, ok := c.library.Chapter(verse.ChapterID)
	if !ok {
		c.logger.Warn("not saving last read position, chapter unknown", "chapter", verse.ChapterID)
		return ErrUnknownChapter
	}

	return c.library.SetLastRead(ctx, models.Bookmark{
		ChapterID:   verse.ChapterID,
		VerseNumber: verse.Number,
		ChapterName: ch.NameSimple,
	})
}
