package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/manukrishna804/logic-solver-ai/internal/generator"
	"github.com/manukrishna804/logic-solver-ai/internal/logging"
	"github.com/manukrishna804/logic-solver-ai/internal/retention"
	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/internal/store"
	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
)

// app is the wired dependency graph shared by the commands.
type app struct {
	cfg       Config
	durations Durations
	logger    *slog.Logger
	validator *validation.JSONSchemaValidator
	store     *store.LibSQLStore
	pruner    *retention.Pruner
	hub       *streaming.MemoryHub
	service   *solver.Service
}

// appOptions selects which parts of the graph a command needs.
type appOptions struct {
	// Generator creates the Gemini client when GOOGLE_API_KEY is set.
	Generator bool
	// History opens the history database when enabled in config.
	History bool
	// Pruner schedules retention pruning. Requires History.
	Pruner bool
}

// newApp loads config and wires the requested components. Logs go to logOut.
func newApp(ctx context.Context, configPath string, logOut io.Writer, opts appOptions) (*app, error) {
	v, err := validation.NewJSONSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("compile schemas: %w", err)
	}
	cfg, err := loadConfig(configPath, v)
	if err != nil {
		return nil, err
	}
	durations, err := cfg.Durations()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		durations: durations,
		logger:    logging.New(logOut, cfg.LogLevel),
		validator: v,
		hub:       streaming.NewMemoryHub(),
	}

	if opts.History && cfg.History {
		if err := a.openStore(ctx); err != nil {
			return nil, err
		}
	}
	if opts.Pruner && a.store != nil {
		p, err := retention.NewPruner(a.store, retention.Config{
			Retention: durations.Retention,
			Schedule:  cfg.PruneSchedule,
			Events:    a.hub,
		}, a.logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("retention: %w", err)
		}
		a.pruner = p
	}

	svcOpts := solver.Options{
		APIKeyPresent: cfg.APIKey != "",
		Events:        a.hub,
		Logger:        a.logger,
	}
	if a.store != nil {
		svcOpts.Store = a.store
	}
	if opts.Generator {
		if gen := a.newGenerator(ctx); gen != nil {
			svcOpts.Generator = gen
		}
	}
	a.service = solver.New(svcOpts)
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.NewLibSQLStore("file:" + a.cfg.DBPath)
	if err != nil {
		return err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return fmt.Errorf("migrate history: %w", err)
	}
	a.store = st
	return nil
}

// newGenerator returns the resilient Gemini generator, or nil when no key is
// configured or the client cannot be created. The service then serves
// fallback flowcharts only.
func (a *app) newGenerator(ctx context.Context) *generator.Resilient {
	gem, err := generator.NewGemini(ctx, a.cfg.APIKey, a.cfg.Model)
	if err != nil {
		a.logger.Warn("generator unavailable, serving fallback results only", "error", err)
		return nil
	}
	return generator.NewResilient(gem, generator.Options{
		Retry:    a.cfg.Retry,
		Breakers: generator.NewBreakers(a.cfg.breakerConfig(a.durations)),
		Timeout:  a.durations.AttemptTimeout,
		Logger:   a.logger,
	})
}

// requireStore fails when history is disabled in config.
func (a *app) requireStore() error {
	if a.store == nil {
		return errors.New("history is disabled; set \"history\": true or LOGICSOLVER_HISTORY=1")
	}
	return nil
}

// Close stops the pruner and closes the store.
func (a *app) Close() {
	if a.pruner != nil {
		if err := a.pruner.Stop(); err != nil {
			a.logger.Warn("pruner stop failed", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("store close failed", "error", err)
		}
	}
}
