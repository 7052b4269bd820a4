// Package audio provides the single-slot verse player.
//
// A Slot holds at most one open audio Resource. Every transition runs under a
// single mutex that is held while the previous resource is closed and the next
// one is opened, so two resources are never open at the same time.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// State is the playback state of a Slot
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StateError
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the slot. VerseID is set for Loading and Playing,
// Message for Error.
type Status struct {
	State   State
	VerseID int
	Message string
}

// IsActive returns true if the slot is loading or playing verseID
func (s Status) IsActive(verseID int) bool {
	return (s.State == StatePlaying || s.State == StateLoading) && s.VerseID == verseID
}

// Resource is an open, playing audio stream.
type Resource interface {
	// Done is closed when playback ends on its own or after Close.
	Done() <-chan struct{}
	// Close stops playback and returns once the resource is fully released.
	Close() error
}

// Backend opens playable resources.
type Backend interface {
	Open(ctx context.Context, uri string) (Resource, error)
}

// PlaybackError reports an audio resource that could not be opened.
type PlaybackError struct {
	VerseID int
	URI     string
	Err     error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback of verse %d: %v", e.VerseID, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// Slot manages at most one active audio resource.
type Slot struct {
	backend Backend
	logger  *slog.Logger

	mu  sync.Mutex
	res Resource
	gen uint64 // bumped whenever the held resource changes

	// status is written with mu held and read under statusMu alone, so Status
	// does not wait for a backend open in progress.
	statusMu sync.RWMutex
	status   Status

	// observer is called with the lock held; it must not call back into the
	// slot and must not block.
	observer func(Status)
}

// NewSlot creates an idle slot over backend.
func NewSlot(backend Backend, logger *slog.Logger) *Slot {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Slot{
		backend: backend,
		logger:  logger,
	}
}

// SetObserver registers a function called on every state change.
func (s *Slot) SetObserver(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// Status returns the current state.
func (s *Slot) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// Activate releases any held resource, then loads and plays uri for verseID.
func (s *Slot) Activate(ctx context.Context, verseID int, uri string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activateLocked(ctx, verseID, uri)
}

// Toggle stops verseID if it is playing, otherwise behaves like Activate.
func (s *Slot) Toggle(ctx context.Context, verseID int, uri string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.State == StatePlaying && s.status.VerseID == verseID {
		s.releaseLocked()
		s.setLocked(Status{State: StateIdle})
		return s.status, nil
	}
	return s.activateLocked(ctx, verseID, uri)
}

// Stop stops playback. It is a no-op when idle or in error.
func (s *Slot) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status.State {
	case StatePlaying, StateLoading:
		s.releaseLocked()
		s.setLocked(Status{State: StateIdle})
	}
}

// Release closes any held resource and returns to Idle whatever the state.
// Owners call it on teardown.
func (s *Slot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	if s.status.State != StateIdle {
		s.setLocked(Status{State: StateIdle})
	}
}

func (s *Slot) activateLocked(ctx context.Context, verseID int, uri string) (Status, error) {
	s.releaseLocked()
	s.setLocked(Status{State: StateLoading, VerseID: verseID})

	res, err := s.backend.Open(ctx, uri)
	if err != nil {
		s.logger.Warn("failed to play audio", "verse_id", verseID, "uri", uri, "error", err)
		s.setLocked(Status{State: StateError, Message: "Failed to play audio. Please try again."})
		return s.status, &PlaybackError{VerseID: verseID, URI: uri, Err: err}
	}

	s.gen++
	s.res = res
	s.setLocked(Status{State: StatePlaying, VerseID: verseID})
	go s.watch(s.gen, res)

	s.logger.Debug("audio playing", "verse_id", verseID, "uri", uri)
	return s.status, nil
}

// watch returns the slot to Idle when res finishes on its own.
func (s *Slot) watch(gen uint64, res Resource) {
	<-res.Done()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.res != res {
		return // already released or replaced
	}
	s.releaseLocked()
	s.setLocked(Status{State: StateIdle})
}

func (s *Slot) releaseLocked() {
	if s.res == nil {
		return
	}
	if err := s.res.Close(); err != nil {
		s.logger.Warn("failed to release audio", "error", err)
	}
	s.res = nil
	s.gen++
}

func (s *Slot) setLocked(st Status) {
	s.statusMu.Lock()
	s.status = st
	s.statusMu.Unlock()
	if s.observer != nil {
		s.observer(st)
	}
}
