// Package config loads massadd settings from a .massadd file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MASSADD_PATH.
	EnvPrefix = "MASSADD"
	// PathEnv names an extra directory searched for the config file.
	PathEnv = "MASSADD_CONFIG_PATH"
	// FileName is the config file name without extension.
	FileName = ".massadd"
)

// Settings is the decoded configuration.
type Settings struct {
	Path            string `mapstructure:"path" json:"path" validate:"required"`
	DefaultCategory string `mapstructure:"default_category" json:"default_category" validate:"required"`
	DefaultType     string `mapstructure:"default_type" json:"default_type" validate:"required"`
	RecentLimit     int    `mapstructure:"recent_tags_limit" json:"recent_tags_limit" validate:"min=5,max=50"`
	RecentDepth     int    `mapstructure:"recent_tags_search_depth" json:"recent_tags_search_depth" validate:"min=50,max=1000"`
	Overflow        string `mapstructure:"overflow" json:"overflow" validate:"oneof=drop strict merge"`
	ContinueOnError bool   `mapstructure:"continue_on_error" json:"continue_on_error"`
	ShowAddedNotes  bool   `mapstructure:"show_added_notes" json:"show_added_notes"`
	LogLevel        string `mapstructure:"log_level" json:"log_level" validate:"oneof=debug info warn error"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" json:"file,omitempty"`
}

// BasePath is the directory of the record store.
func (s *Settings) BasePath() string {
	return s.Path
}

// Defaults returns the built in settings.
func Defaults() map[string]any {
	return map[string]any{
		"path":                     "~/.massadd.db",
		"default_category":         "Default",
		"default_type":             "basic",
		"recent_tags_limit":        10,
		"recent_tags_search_depth": 100,
		"overflow":                 "drop",
		"continue_on_error":        false,
		"show_added_notes":         false,
		"log_level":                "info",
	}
}

// NewViper returns a viper instance with defaults, env binding and the
// config search path set up.
func NewViper() *viper.Viper {
	v := viper.New()
	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}
	v.SetConfigName(FileName) // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file, if one exists, and decodes the settings.
func Load() (*Settings, error) {
	return LoadFrom(NewViper())
}

// LoadFrom decodes and validates the settings held by v.
func LoadFrom(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	s.File = v.ConfigFileUsed()

	path, err := homedir.Expand(s.Path)
	if err != nil {
		return nil, fmt.Errorf("config: expanding path %q: %w", s.Path, err)
	}
	s.Path = path

	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

var validate = validator.New()

// Validate checks field rules.
func Validate(s *Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config: invalid settings: %w", err)
	}
	return nil
}
