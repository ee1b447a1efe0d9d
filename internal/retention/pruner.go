// Package retention prunes generation history on a cron schedule.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
)

// DefaultSchedule runs pruning at the top of every hour.
const DefaultSchedule = "0 * * * *"

// Target is the part of the history store the pruner needs.
type Target interface {
	PruneGenerations(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config configures a Pruner.
type Config struct {
	// Retention is how long generations are kept. Must be positive.
	Retention time.Duration
	// Schedule is a five-field cron expression. Empty uses DefaultSchedule.
	Schedule string
	// Interval is how often the loop checks whether a run is due.
	// Zero means one minute.
	Interval time.Duration
	// Events is notified after a run that removed records. Optional.
	Events streaming.Publisher
}

// Pruner deletes generations older than the retention window whenever the
// cron schedule comes due.
type Pruner struct {
	target    Target
	retention time.Duration
	schedule  cron.Schedule
	interval  time.Duration
	events    streaming.Publisher
	logger    *slog.Logger
	now       func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex

	nextMu  sync.Mutex
	nextRun time.Time
}

// NewPruner creates a Pruner. It fails when the schedule does not parse or the
// retention window is not positive.
func NewPruner(target Target, cfg Config, logger *slog.Logger) (*Pruner, error) {
	if cfg.Retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", cfg.Retention)
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", cfg.Schedule, err)
	}

	return &Pruner{
		target:    target,
		retention: cfg.Retention,
		schedule:  schedule,
		interval:  cfg.Interval,
		events:    cfg.Events,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Start launches the background loop. A prune runs immediately, then each
// time the schedule comes due.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.done != nil {
		p.mu.Unlock()
		return fmt.Errorf("pruner already started")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.loop(loopCtx)
	p.logger.Info("retention pruner started", slog.Duration("retention", p.retention))
	return nil
}

func (p *Pruner) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick prunes when the next run is due and schedules the one after.
func (p *Pruner) tick(ctx context.Context) {
	now := p.now()

	p.nextMu.Lock()
	due := p.nextRun.IsZero() || !p.nextRun.After(now)
	if due {
		p.nextRun = p.schedule.Next(now)
	}
	p.nextMu.Unlock()

	if !due {
		return
	}
	if _, err := p.PruneOnce(ctx); err != nil {
		p.logger.Error("failed to prune history", slog.String("error", err.Error()))
	}
}

// PruneOnce deletes generations older than the retention window and returns
// how many were removed.
func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention)
	n, err := p.target.PruneGenerations(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.logger.Info("pruned history", slog.Int64("count", n), slog.Time("cutoff", cutoff))
		if p.events != nil {
			_ = p.events.Publish(ctx, streaming.Event{
				Type:    streaming.EventPruned,
				Payload: map[string]any{"count": n, "cutoff": cutoff},
			})
		}
	}
	return n, nil
}

// NextRun reports when the next prune is scheduled. It is zero before the
// first tick.
func (p *Pruner) NextRun() time.Time {
	p.nextMu.Lock()
	defer p.nextMu.Unlock()
	return p.nextRun
}

// CalculateNextRun computes the next run time for the configured schedule.
func (p *Pruner) CalculateNextRun(from time.Time) time.Time {
	return p.schedule.Next(from)
}

// Stop gracefully shuts down the pruner.
func (p *Pruner) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return nil
	}

	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil

	p.logger.Info("retention pruner stopped")
	return nil
}
