package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/config"
	"tableflip.dev/massadd/pkg/logging"
	"tableflip.dev/massadd/pkg/store"
)

// env is what every command needs: settings, a logger and the service.
type env struct {
	settings *config.Settings
	log      zerolog.Logger
	svc      *app.Service
}

func loadSettings() (*config.Settings, error) {
	v := config.NewViper()
	if globals.ConfigFile != "" {
		v.SetConfigFile(globals.ConfigFile)
	}
	return config.LoadFrom(v)
}

func newLogger(s *config.Settings) (zerolog.Logger, error) {
	name := s.LogLevel
	if globals.LogLevel != "" {
		name = globals.LogLevel
	}
	if globals.Verbose {
		name = "debug"
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logging.New(os.Stderr, level), nil
}

func loadEnv() (*env, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(s)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(s, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", s.BasePath(), err)
	}
	log.Debug().Str("path", s.BasePath()).Str("config", s.File).Msg("store loaded")
	return &env{
		settings: s,
		log:      log,
		svc:      &app.Service{Persistence: p, DefaultCategory: s.DefaultCategory},
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
