package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"tvrip/internal/config"
	"tvrip/internal/database"
	"tvrip/internal/logging"
)

// commandContext shares lazily constructed dependencies between commands.
// The database (and the lock guarding it) is only opened by commands that
// actually touch episode or session state.
type commandContext struct {
	configFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	storeOnce sync.Once
	store     *database.Store
	storeErr  error
	lock      *flock.Flock
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// ensureStore opens the episode database, holding an exclusive lock so
// concurrent tvrip invocations cannot interleave rips and session writes.
func (c *commandContext) ensureStore() (*database.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.storeErr = err
			return
		}

		lock := flock.New(filepath.Join(filepath.Dir(cfg.Paths.Database), "tvrip.lock"))
		ok, err := lock.TryLock()
		if err != nil {
			c.storeErr = fmt.Errorf("acquire lock: %w", err)
			return
		}
		if !ok {
			c.storeErr = errors.New("another tvrip instance is already running")
			return
		}

		store, err := database.Open(cfg.Paths.Database)
		if err != nil {
			_ = lock.Unlock()
			c.storeErr = err
			return
		}
		c.lock = lock
		c.store = store
	})
	return c.store, c.storeErr
}

// session loads the persisted session state.
func (c *commandContext) session(ctx context.Context) (*database.Store, *database.Session, error) {
	store, err := c.ensureStore()
	if err != nil {
		return nil, nil, err
	}
	session, err := store.LoadSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, session, nil
}

// currentSeason ensures a program and season are selected and returns the
// session plus that season's episodes.
func (c *commandContext) currentSeason(ctx context.Context) (*database.Store, *database.Session, []database.Episode, error) {
	store, session, err := c.session(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if session.Program == "" {
		return nil, nil, nil, errors.New("no program selected; run `tvrip program <name>` first")
	}
	episodes, err := store.Episodes(ctx, session.Program, session.Season)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, session, episodes, nil
}

// Close releases the store and the instance lock.
func (c *commandContext) Close() {
	if c.store != nil {
		_ = c.store.Close()
	}
	if c.lock != nil {
		_ = c.lock.Unlock()
	}
}
