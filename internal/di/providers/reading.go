package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/justyntemme/warad-t/internal/api"
	"github.com/justyntemme/warad-t/internal/audio"
	"github.com/justyntemme/warad-t/internal/bookmark"
	"github.com/justyntemme/warad-t/internal/config"
	"github.com/justyntemme/warad-t/internal/session"
)

// StoreHandle wraps the bookmark store with shutdown capability.
type StoreHandle struct {
	*bookmark.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the last-read bookmark store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	store, err := bookmark.Open(cfg.DBPath(), log.Logger.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Bookmark store opened", "path", cfg.DBPath())
	return &StoreHandle{Store: store}, nil
}

// ProvideClient provides the quran.com content client.
func ProvideClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	client := api.NewClient(api.Options{
		BaseURL:           cfg.APIBaseURL,
		Language:          cfg.Language,
		TranslationID:     cfg.TranslationID,
		AudioHost:         cfg.AudioHost,
		Reciter:           cfg.Reciter,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
	}, log.Logger.Logger)

	log.Info("Content client initialized", "base_url", cfg.APIBaseURL, "reciter", cfg.Reciter)
	return client, nil
}

// SlotHandle wraps the audio slot so shutdown releases any playing verse.
type SlotHandle struct {
	*audio.Slot
}

// Shutdown implements do.Shutdownable.
func (h *SlotHandle) Shutdown() error {
	h.Release()
	return nil
}

// ProvideSlot provides the process-wide audio slot.
func ProvideSlot(i do.Injector) (*SlotHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	backend := audio.NewExecBackend(cfg.PlayerCommand, cfg.PlayerArgs, log.Logger.Logger).
		WithProbe(&http.Client{Timeout: cfg.RequestTimeout})

	return &SlotHandle{Slot: audio.NewSlot(backend, log.Logger.Logger)}, nil
}

// ProvideLibrary provides the shared reading library. The bookmark is read
// here; the chapter list is fetched by the UI so it can show progress.
func ProvideLibrary(i do.Injector) (*session.Library, error) {
	log := do.MustInvoke[*LoggerHandle](i)
	client := do.MustInvoke[*api.Client](i)
	store := do.MustInvoke[*StoreHandle](i)

	lib := session.NewLibrary(client, store.Store, log.Logger.Logger)
	lib.LoadBookmark(context.Background())
	return lib, nil
}
