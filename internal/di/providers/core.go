// Package providers contains dependency injection providers for warad-t.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/justyntemme/warad-t/internal/config"
	"github.com/justyntemme/warad-t/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

// LoggerHandle wraps the file logger with shutdown capability.
type LoggerHandle struct {
	*logger.Logger
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.Close()
}

// ProvideLogger provides the structured logger writing to the data dir.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	level := logger.ParseLevel(cfg.LogLevel)
	log, err := logger.NewFile(cfg.LogPath(), logger.Config{
		Format:    cfg.LogFormat,
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Starting warad-t",
		"config", cfg.Path(),
		"data_dir", cfg.DataDir,
		"log_level", cfg.LogLevel,
		"api", cfg.APIBaseURL,
	)

	return &LoggerHandle{Logger: log}, nil
}
