package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/warad-t/pkg/models"
)

type fakeLister struct {
	mu       sync.Mutex
	chapters []models.Chapter
	err      error
	calls    int
}

func (f *fakeLister) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.chapters, nil
}

type memStore struct {
	mu     sync.Mutex
	value  *models.Bookmark
	err    error
	writes int
}

func (s *memStore) Read(ctx context.Context) (models.Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return models.Bookmark{}, false
	}
	return *s.value, true
}

func (s *memStore) Write(ctx context.Context, b models.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.err != nil {
		return s.err
	}
	s.value = &b
	return nil
}

func (s *memStore) get() (*models.Bookmark, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.writes
}

func testChapters() []models.Chapter {
	return []models.Chapter{
		{ID: 1, NameSimple: "Al-Fatihah", RevelationPlace: "makkah", VersesCount: 7},
		{ID: 2, NameSimple: "Al-Baqarah", RevelationPlace: "madinah", VersesCount: 286},
	}
}

func TestLibrary_Load(t *testing.T) {
	t.Run("chapters and bookmark", func(t *testing.T) {
		store := &memStore{value: &models.Bookmark{ChapterID: 2, VerseNumber: 255, ChapterName: "Al-Baqarah"}}
		lib := NewLibrary(&fakeLister{chapters: testChapters()}, store, nil)

		require.NoError(t, lib.Load(context.Background()))
		assert.Len(t, lib.Chapters(), 2)
		assert.NoError(t, lib.Err())

		b, ok := lib.LastRead()
		require.True(t, ok)
		assert.Equal(t, 255, b.VerseNumber)
	})

	t.Run("no bookmark", func(t *testing.T) {
		lib := NewLibrary(&fakeLister{chapters: testChapters()}, &memStore{}, nil)
		require.NoError(t, lib.Load(context.Background()))

		_, ok := lib.LastRead()
		assert.False(t, ok)
	})

	t.Run("chapter list failure keeps bookmark", func(t *testing.T) {
		store := &memStore{value: &models.Bookmark{ChapterID: 1, VerseNumber: 1, ChapterName: "Al-Fatihah"}}
		lister := &fakeLister{err: errors.New("offline")}
		lib := NewLibrary(lister, store, nil)

		err := lib.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, err, lib.Err())
		assert.Empty(t, lib.Chapters())

		_, ok := lib.LastRead()
		assert.True(t, ok)

		// Retry succeeds once the network is back.
		lister.mu.Lock()
		lister.err = nil
		lister.chapters = testChapters()
		lister.mu.Unlock()

		require.NoError(t, lib.ReloadChapters(context.Background()))
		assert.NoError(t, lib.Err())
		assert.Len(t, lib.Chapters(), 2)
	})
}

func TestLibrary_Chapter(t *testing.T) {
	lib := NewLibrary(&fakeLister{chapters: testChapters()}, &memStore{}, nil)
	require.NoError(t, lib.Load(context.Background()))

	ch, ok := lib.Chapter(2)
	require.True(t, ok)
	assert.Equal(t, "Al-Baqarah", ch.NameSimple)

	_, ok = lib.Chapter(3)
	assert.False(t, ok)
}

func TestLibrary_ChaptersIsCopy(t *testing.T) {
	lib := NewLibrary(&fakeLister{chapters: testChapters()}, &memStore{}, nil)
	require.NoError(t, lib.Load(context.Background()))

	list := lib.Chapters()
	list[0].NameSimple = "changed"

	ch, _ := lib.Chapter(1)
	assert.Equal(t, "Al-Fatihah", ch.NameSimple)
}

func TestLibrary_SetLastRead(t *testing.T) {
	store := &memStore{}
	lib := NewLibrary(&fakeLister{chapters: testChapters()}, store, nil)
	ctx := context.Background()

	want := models.Bookmark{ChapterID: 1, VerseNumber: 3, ChapterName: "Al-Fatihah"}
	require.NoError(t, lib.SetLastRead(ctx, want))

	got, ok := lib.LastRead()
	require.True(t, ok)
	assert.Equal(t, want, got)
	saved, _ := store.get()
	assert.Equal(t, want, *saved)

	// A failed write leaves the cached bookmark alone.
	store.mu.Lock()
	store.err = errors.New("disk full")
	store.mu.Unlock()

	err := lib.SetLastRead(ctx, models.Bookmark{ChapterID: 2, VerseNumber: 1, ChapterName: "Al-Baqarah"})
	require.Error(t, err)

	got, _ = lib.LastRead()
	assert.Equal(t, want, got)
}
