package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

func parseLevel(s string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return lvl, nil
}

func parsePreset(s string) (config.DifficultyPreset, bool) {
	return config.ParsePreset(strings.ToLower(s))
}

// fileLogger opens ~/.arcade/arcade.log so logs stay off the alt screen.
// If the file cannot be opened, logs are discarded.
func fileLogger() (*log.Logger, io.Closer) {
	lvl, _ := parseLevel(flagLogLevel)
	var w io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)

	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".arcade")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				w, closer = f, f
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           lvl,
	})
	return logger, closer
}

// stderrLogger logs to the terminal, for commands without a TUI.
func stderrLogger(prefix string) *log.Logger {
	lvl, _ := parseLevel(flagLogLevel)
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

// openStore opens the scores database. A failure is logged and yields nil;
// games still run without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	store.SetLogger(logger.WithPrefix("storage"))
	return store
}

// loadSettings returns the stored settings with the --difficulty flag
// applied on top.
func loadSettings(store *storage.Store) storage.Settings {
	s := storage.DefaultSettings()
	if store != nil {
		s = store.LoadSettings()
	}
	if flagDifficulty != "" {
		p, _ := parsePreset(flagDifficulty)
		s.Difficulty = string(p)
	}
	return s
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// localSession bundles what play and menu need.
type localSession struct {
	logger *log.Logger
	store  *storage.Store
	player audio.Player
	closer io.Closer
}

func openLocalSession() *localSession {
	logger, closer := fileLogger()
	store := openStore(logger)
	settings := loadSettings(store)

	player := audio.New(settings.Sound, settings.Volume, logger.WithPrefix("audio"))
	tui.ApplySettings(settings, player)
	logger.Debug("session ready", "difficulty", settings.Preset(), "sound", settings.Sound)

	return &localSession{logger: logger, store: store, player: player, closer: closer}
}

func (s *localSession) Close() {
	s.player.Close()
	if s.store != nil {
		s.store.Close()
	}
	s.closer.Close()
}
