package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warad-t", "config.json")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultTranslationID, cfg.TranslationID)
	assert.Equal(t, DefaultAudioHost, cfg.AudioHost)
	assert.Equal(t, DefaultReciter, cfg.Reciter)
	assert.Equal(t, DefaultPlayerCommand, cfg.PlayerCommand)
	assert.Equal(t, DefaultPlayerArgs, cfg.PlayerArgs)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultRequestBurst, cfg.RequestBurst)
	assert.InDelta(t, DefaultRequestsPerSecond, cfg.RequestsPerSecond, 0.0001)

	assert.Equal(t, filepath.Dir(path), cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "warad-t.log"), cfg.LogPath())
	assert.Equal(t, filepath.Join(cfg.DataDir, "db"), cfg.DBPath())
	assert.Equal(t, path, cfg.Path())
}

func TestLoadFile_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{
  "reciter": "Husary",
  "translation_id": 20,
  "player_args": ["-nodisp", "-autoexit"],
  "request_timeout": "5s"
}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Husary", cfg.Reciter)
	assert.Equal(t, 20, cfg.TranslationID)
	assert.Equal(t, []string{"-nodisp", "-autoexit"}, cfg.PlayerArgs)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultLanguage, cfg.Language, "unset keys keep defaults")
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"reciter": "Husary", "log_level": "warn"}`)

	t.Setenv("WARAD_RECITER", "Minshawi")
	t.Setenv("WARAD_REQUESTS_PER_SECOND", "5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Minshawi", cfg.Reciter)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.InDelta(t, 5.0, cfg.RequestsPerSecond, 0.0001)
}

func TestLoadFile_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "WARAD_LANGUAGE=ar\nWARAD_AUDIO_HOST=mirror.example.com\n")

	// godotenv writes the process environment; register cleanup before it does.
	t.Setenv("WARAD_LANGUAGE", "")
	t.Setenv("WARAD_AUDIO_HOST", "")
	require.NoError(t, os.Unsetenv("WARAD_LANGUAGE"))
	require.NoError(t, os.Unsetenv("WARAD_AUDIO_HOST"))

	cfg, err := LoadFile(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, "ar", cfg.Language)
	assert.Equal(t, "mirror.example.com", cfg.AudioHost)
}

func TestLoadFile_DotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "WARAD_RECITER=FromFile\n")
	t.Setenv("WARAD_RECITER", "FromEnv")

	cfg, err := LoadFile(filepath.Join(dir, "config.json"), envFile)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.Reciter)
}

func TestLoadFile_MissingEnvFileIgnored(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "config.json"), filepath.Join(dir, "nope.env"))
	assert.NoError(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"reciter": `},
		{name: "bad url", content: `{"api_base_url": "not a url"}`},
		{name: "zero translation", content: `{"translation_id": 0}`},
		{name: "zero rate", content: `{"requests_per_second": 0}`},
		{name: "zero burst", content: `{"request_burst": 0}`},
		{name: "bad timeout", content: `{"request_timeout": "soon"}`},
		{name: "empty reciter", content: `{"reciter": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			writeFile(t, path, tt.content)

			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	cfg.Reciter = "Sudais"
	cfg.RequestTimeout = 12 * time.Second
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sudais", loaded.Reciter)
	assert.Equal(t, 12*time.Second, loaded.RequestTimeout)
	assert.Equal(t, cfg.PlayerArgs, loaded.PlayerArgs)
}

func TestConfig_SetAPIBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	require.NoError(t, cfg.SetAPIBaseURL("http://localhost:9000/api/v4/"))
	assert.Equal(t, "http://localhost:9000/api/v4", cfg.APIBaseURL)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/v4", loaded.APIBaseURL)

	assert.Error(t, cfg.SetAPIBaseURL("::nope"))
}
