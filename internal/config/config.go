// Package config handles configuration loading for the kiosk display.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	apierrors "github.com/diogo/kioskfeed/internal/errors"
	"github.com/diogo/kioskfeed/internal/models"
	"github.com/diogo/kioskfeed/internal/render"
)

// EnvPrefix is the prefix of environment overrides, e.g. KIOSK_SERVER_URL
const EnvPrefix = "KIOSK_"

// configNames are tried in order inside the config directory
var configNames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

// Config represents the user configuration
type Config struct {
	ServerURL string `koanf:"server_url"`
	Chat      string `koanf:"chat"`
	Classroom string `koanf:"classroom"`
	// Classrooms maps classroom ids to the label shown in the header
	Classrooms map[string]string `koanf:"classrooms"`

	RotationInterval time.Duration `koanf:"rotation_interval"`
	RefreshInterval  time.Duration `koanf:"refresh_interval"`
	LanguageInterval time.Duration `koanf:"language_interval"`
	// ResetInterval rebuilds the whole session periodically; 0 disables it
	ResetInterval  time.Duration `koanf:"reset_interval"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	Timezone          string `koanf:"timezone"`
	PrimaryLanguage   string `koanf:"primary_language"`
	SecondaryLanguage string `koanf:"secondary_language"`
	SyncServerTime    bool   `koanf:"sync_server_time"`
	DefaultTitle      string `koanf:"default_title"`

	Markdown      string `koanf:"markdown"`       // "lite" or "full"
	MarkdownStyle string `koanf:"markdown_style"` // glamour style for "full"
	TUITheme      string `koanf:"tui_theme"`

	LogFile  string `koanf:"log_file"`
	LogLevel string `koanf:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	logFile := ""
	if dir, err := GetConfigDir(); err == nil {
		logFile = filepath.Join(dir, "kiosk.log")
	}
	return Config{
		ServerURL:         "http://localhost:8080",
		Classrooms:        map[string]string{},
		RotationInterval:  models.DefaultRotationInterval,
		RefreshInterval:   models.DefaultRefreshInterval,
		LanguageInterval:  models.DefaultLanguageInterval,
		ResetInterval:     models.DefaultResetInterval,
		RequestTimeout:    models.DefaultRequestTimeout,
		Timezone:          "Local",
		PrimaryLanguage:   "it",
		SecondaryLanguage: "en",
		SyncServerTime:    true,
		DefaultTitle:      models.DefaultTitle,
		Markdown:          render.ModeLite,
		MarkdownStyle:     "dark",
		TUITheme:          "tokyonight",
		LogFile:           logFile,
		LogLevel:          "info",
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", oops.With("context", "resolving home directory").Wrap(err)
	}
	return filepath.Join(home, ".kiosk"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", oops.With("config_dir", configDir).Wrap(err)
	}
	return configDir, nil
}

// GetConfigPath returns the config file in use: the first existing candidate
// in the config directory, or config.json when none exists yet.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	name, found := lo.Find(configNames, func(name string) bool {
		_, err := os.Stat(filepath.Join(configDir, name))
		return err == nil
	})
	if !found {
		name = configNames[0]
	}
	return filepath.Join(configDir, name), nil
}

// LoadConfig loads the configuration from the config directory and the environment
func LoadConfig() (Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads defaults, then the file at path (or the config directory
// file when path is empty), then KIOSK_* environment variables. An explicit path
// must exist; a missing default file is not an error.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := GetConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		parser, err := parserFor(path)
		if err != nil {
			return cfg, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return cfg, oops.With("config_file", path).Wrap(err)
		}
	} else if explicit {
		return cfg, oops.With("config_file", path).Wrap(err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return cfg, oops.With("context", "loading environment variables").Wrap(err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return DefaultConfig(), oops.With("config_file", path, "context", "unmarshaling config").Wrap(err)
	}
	if cfg.Classrooms == nil {
		cfg.Classrooms = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, oops.With("config_file", path).Wrap(err)
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, oops.With("config_file", path).Errorf("unsupported config file extension: %s", ext)
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	intervals := []struct {
		field string
		value time.Duration
	}{
		{"rotation_interval", c.RotationInterval},
		{"refresh_interval", c.RefreshInterval},
		{"language_interval", c.LanguageInterval},
		{"request_timeout", c.RequestTimeout},
	}
	for _, iv := range intervals {
		if iv.value <= 0 {
			return apierrors.NewConfigError(iv.field, "must be a positive duration")
		}
	}
	if c.RequestTimeout > c.RefreshInterval {
		return apierrors.NewConfigError("request_timeout", "must not exceed refresh_interval")
	}
	if c.ResetInterval < 0 {
		return apierrors.NewConfigError("reset_interval", "must not be negative")
	}

	languages := [][2]string{
		{"primary_language", c.PrimaryLanguage},
		{"secondary_language", c.SecondaryLanguage},
	}
	for _, lang := range languages {
		if _, ok := models.LookupLocale(lang[1]); !ok {
			return apierrors.NewConfigError(lang[0], "unsupported language "+lang[1]+", expected one of "+strings.Join(models.SupportedLanguages(), ", "))
		}
	}

	if !render.IsValidMode(c.Markdown) {
		return apierrors.NewConfigError("markdown", "expected lite or full, got "+c.Markdown)
	}
	if c.TUITheme != "" && !lo.Contains(render.TUIThemeNames(), c.TUITheme) {
		return apierrors.NewConfigError("tui_theme", "unknown theme "+c.TUITheme)
	}
	if _, err := c.Location(); err != nil {
		return apierrors.NewConfigError("timezone", err.Error())
	}
	if !lo.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)) {
		return apierrors.NewConfigError("log_level", "expected debug, info, warn or error")
	}
	return nil
}

// Location resolves the display time zone
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Locales returns the primary and secondary display locales
func (c Config) Locales() (models.Locale, models.Locale) {
	primary, _ := models.LookupLocale(c.PrimaryLanguage)
	secondary, _ := models.LookupLocale(c.SecondaryLanguage)
	return primary, secondary
}

// ToMap returns the configuration keyed by its koanf names, durations as strings
func (c Config) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"server_url":         c.ServerURL,
		"chat":               c.Chat,
		"classroom":          c.Classroom,
		"classrooms":         c.Classrooms,
		"rotation_interval":  c.RotationInterval.String(),
		"refresh_interval":   c.RefreshInterval.String(),
		"language_interval":  c.LanguageInterval.String(),
		"reset_interval":     c.ResetInterval.String(),
		"request_timeout":    c.RequestTimeout.String(),
		"timezone":           c.Timezone,
		"primary_language":   c.PrimaryLanguage,
		"secondary_language": c.SecondaryLanguage,
		"sync_server_time":   c.SyncServerTime,
		"default_title":      c.DefaultTitle,
		"markdown":           c.Markdown,
		"markdown_style":     c.MarkdownStyle,
		"tui_theme":          c.TUITheme,
		"log_file":           c.LogFile,
		"log_level":          c.LogLevel,
	}
}

// SaveConfig writes the configuration as config.json in the config directory
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.json")

	data, err := json.Parser().Marshal(cfg.ToMap())
	if err != nil {
		return oops.With("config_file", configPath, "context", "marshaling config").Wrap(err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return oops.With("config_file", configPath).Wrap(err)
	}
	return nil
}
