package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIBaseURL        = "https://api.quran.com/api/v4"
	DefaultLanguage          = "en"
	DefaultTranslationID     = 131
	DefaultAudioHost         = "audio.qurancdn.com"
	DefaultReciter           = "Alafasy"
	DefaultPlayerCommand     = "mpv"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultTheme             = "dark"
	DefaultRequestsPerSecond = 2.0
	DefaultRequestBurst      = 4
	DefaultRequestTimeout    = 30 * time.Second

	configFileName = "config.json"
	configDirName  = "warad-t"
	envPrefix      = "WARAD"
	envFileName    = ".env"
	logFileName    = "warad-t.log"
	dbDirName      = "db"
)

// DefaultPlayerArgs are passed to the player before the audio URL.
var DefaultPlayerArgs = []string{"--no-video", "--really-quiet"}

// Config holds the application configuration
type Config struct {
	APIBaseURL    string `mapstructure:"api_base_url"`
	Language      string `mapstructure:"language"`
	TranslationID int    `mapstructure:"translation_id"`

	AudioHost     string   `mapstructure:"audio_host"`
	Reciter       string   `mapstructure:"reciter"`
	PlayerCommand string   `mapstructure:"player_command"`
	PlayerArgs    []string `mapstructure:"player_args"`

	DataDir   string `mapstructure:"data_dir"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Theme     string `mapstructure:"theme"`

	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RequestBurst      int           `mapstructure:"request_burst"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`

	// Path to config file (not persisted)
	path string
}

// Load loads configuration from the config file, a .env file in the working
// directory and WARAD_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath, envFileName)
}

// LoadFile loads configuration from configPath. Each envFile that exists is
// read into the environment first; variables already set are not replaced.
func LoadFile(configPath string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v, filepath.Dir(configPath))

	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.path = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("translation_id", DefaultTranslationID)
	v.SetDefault("audio_host", DefaultAudioHost)
	v.SetDefault("reciter", DefaultReciter)
	v.SetDefault("player_command", DefaultPlayerCommand)
	v.SetDefault("player_args", DefaultPlayerArgs)
	v.SetDefault("data_dir", configDir)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("requests_per_second", DefaultRequestsPerSecond)
	v.SetDefault("request_burst", DefaultRequestBurst)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q", c.APIBaseURL)
	}
	if c.TranslationID <= 0 {
		return fmt.Errorf("translation_id must be positive, got %d", c.TranslationID)
	}
	if c.AudioHost == "" || c.Reciter == "" {
		return errors.New("audio_host and reciter must be set")
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.RequestBurst < 1 {
		return fmt.Errorf("request_burst must be at least 1, got %d", c.RequestBurst)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Path returns the config file location.
func (c *Config) Path() string {
	return c.path
}

// LogPath returns the log file location inside the data dir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, logFileName)
}

// DBPath returns the bookmark database directory inside the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, dbDirName)
}

// Values returns the settings keyed as in the config file.
func (c *Config) Values() map[string]any {
	return map[string]any{
		"api_base_url":        c.APIBaseURL,
		"language":            c.Language,
		"translation_id":      c.TranslationID,
		"audio_host":          c.AudioHost,
		"reciter":             c.Reciter,
		"player_command":      c.PlayerCommand,
		"player_args":         c.PlayerArgs,
		"data_dir":            c.DataDir,
		"log_level":           c.LogLevel,
		"log_format":          c.LogFormat,
		"theme":               c.Theme,
		"requests_per_second": c.RequestsPerSecond,
		"request_burst":       c.RequestBurst,
		"request_timeout":     c.RequestTimeout.String(),
	}
}

// Save persists the configuration to disk
func (c *Config) Save() error {
	// Ensure directory exists
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.Values(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}

// SetAPIBaseURL updates the API base URL and saves
func (c *Config) SetAPIBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api url %q", raw)
	}
	c.APIBaseURL = strings.TrimRight(raw, "/")
	return c.Save()
}

// SetTheme updates the theme name and saves
func (c *Config) SetTheme(name string) error {
	c.Theme = name
	return c.Save()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, configDirName, configFileName), nil
}
