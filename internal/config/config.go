// Package config holds the engnotes application configuration.
package config

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/idilsaglam/engnotes/internal/convert"
	"github.com/idilsaglam/engnotes/internal/store/jsonstore"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Themes.
const (
	ThemeClassic = "classic"
	ThemeNeon    = "neon"
	ThemeMono    = "mono"
)

// MaxPrecision bounds the number of rendered decimals.
const MaxPrecision = 12

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Notes NotesConfig       `yaml:"notes"`
	UI    UIConfig          `yaml:"ui"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	return c.UI.Validate()
}

// ApplicationConfig holds logging configuration.
// An empty LogFile means stderr for CLI commands and no logging for the TUI.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	LogFile  string     `yaml:"log_file"`
}

// NotesConfig locates the note store file.
type NotesConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// UIConfig controls rendering.
type UIConfig struct {
	Theme     string `yaml:"theme"`
	Color     string `yaml:"color"`
	Precision int    `yaml:"precision"`
}

// Validate validates the UI configuration.
func (c *UIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.Required, validation.In(ThemeClassic, ThemeNeon, ThemeMono)),
		validation.Field(&c.Color, validation.Required, validation.In(ColorAuto, ColorAlways, ColorNever)),
		validation.Field(&c.Precision, validation.Min(0), validation.Max(MaxPrecision)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Notes: NotesConfig{
			Path: jsonstore.DefaultFileName,
		},
		UI: UIConfig{
			Theme:     ThemeClassic,
			Color:     ColorAuto,
			Precision: convert.DefaultPrecision,
		},
	}
}
