package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// gdataAppName is the data directory name used by --store gdata.
const gdataAppName = "flappy"

// keyValueStore is a best-score store that can also forget the score.
type keyValueStore interface {
	flappy.KeyValueStore
	Delete(key string) error
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so they log to --log-file or nowhere; fallback is used otherwise.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig loads the YAML config and applies --difficulty.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	return cfg, nil
}

// openBestStore picks where the best score is kept according to --store.
// history may be nil when the database could not be opened.
func openBestStore(history *storage.Store, logger *log.Logger) (keyValueStore, error) {
	switch flagStore {
	case "sqlite", "":
		if history == nil {
			logger.Warn("scores database unavailable, best score will not persist")
			return storage.NewMemoryStore(), nil
		}
		return history, nil
	case "gdata":
		gs, err := storage.OpenGData(gdataAppName)
		if err != nil {
			return nil, err
		}
		return gs, nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown --store %q (want sqlite, gdata or memory)", flagStore)
	}
}

// historyOf converts a possibly nil store into a tui.History.
func historyOf(store *storage.Store) tui.History {
	if store == nil {
		return nil
	}
	return store
}

// gameFactory creates fresh flappy games sharing one config and store.
func gameFactory(cfg config.FlappyConfig, kv flappy.KeyValueStore, logger *log.Logger) tui.GameFactory {
	return func() tui.Game {
		return flappy.New(
			flappy.WithConfig(cfg),
			flappy.WithStore(kv),
			flappy.WithLogger(logger),
		)
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fatal prints err and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// env is what every game-running command needs.
type env struct {
	cfg      config.FlappyConfig
	logger   *log.Logger
	history  *storage.Store
	best     keyValueStore
	closeLog func()
}

// setup loads config, logging and storage. A missing database is not fatal:
// the game runs without history.
func setup(logOut io.Writer) *env {
	logger, closeLog, err := newLogger(logOut)
	if err != nil {
		fatal("%v", err)
	}

	cfg, err := loadGameConfig()
	if err != nil {
		closeLog()
		fatal("%v", err)
	}

	history, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		history = nil
	}

	best, err := openBestStore(history, logger)
	if err != nil {
		if history != nil {
			history.Close()
		}
		closeLog()
		fatal("%v", err)
	}

	return &env{cfg: cfg, logger: logger, history: history, best: best, closeLog: closeLog}
}

func (e *env) close() {
	if e.history != nil {
		e.history.Close()
	}
	e.closeLog()
}

func (e *env) games() tui.GameFactory {
	return gameFactory(e.cfg, e.best, e.logger)
}
