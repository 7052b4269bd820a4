package di

import (
	"context"
	"os"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/warad-t/internal/audio"
	"github.com/justyntemme/warad-t/internal/config"
	"github.com/justyntemme/warad-t/internal/di/providers"
	"github.com/justyntemme/warad-t/internal/session"
	"github.com/justyntemme/warad-t/pkg/models"
)

// isolate points the user config dir at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestContainer_BootstrapAndShutdown(t *testing.T) {
	isolate(t)

	injector := NewContainer()
	require.NoError(t, Bootstrap(injector))

	cfg := do.MustInvoke[*config.Config](injector)
	lib := do.MustInvoke[*session.Library](injector)
	slot := do.MustInvoke[*providers.SlotHandle](injector)

	_, ok := lib.LastRead()
	assert.False(t, ok, "fresh data dir has no bookmark")
	assert.Equal(t, audio.StateIdle, slot.Status().State)

	want := models.Bookmark{ChapterID: 36, VerseNumber: 1, ChapterName: "Ya-Sin"}
	require.NoError(t, lib.SetLastRead(context.Background(), want))

	assert.Nil(t, injector.Shutdown())

	_, err := os.Stat(cfg.LogPath())
	assert.NoError(t, err, "log file created in data dir")

	// A new container sees the saved bookmark.
	injector = NewContainer()
	require.NoError(t, Bootstrap(injector))
	defer injector.Shutdown()

	got, ok := do.MustInvoke[*session.Library](injector).LastRead()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestContainer_ConfigChangesBeforeBootstrap(t *testing.T) {
	isolate(t)
	t.Setenv("WARAD_RECITER", "Husary")

	injector := NewContainer()
	defer injector.Shutdown()

	cfg := do.MustInvoke[*config.Config](injector)
	assert.Equal(t, "Husary", cfg.Reciter)

	cfg.Language = "ar"
	require.NoError(t, Bootstrap(injector))
	assert.Equal(t, "ar", do.MustInvoke[*config.Config](injector).Language)
}
