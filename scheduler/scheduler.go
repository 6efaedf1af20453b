package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Reconciler recomputes every folder's mastery.
type Reconciler interface {
	RecomputeAll(ctx context.Context) (int, error)
}

// Pruner drops idle review sessions.
type Pruner interface {
	Prune() int
}

// Scheduler runs the periodic maintenance jobs of the service.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	reconciler Reconciler
	pruner     Pruner
}

func New(reconciler Reconciler, pruner Pruner) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:  s,
		reconciler: reconciler,
		pruner:     pruner,
	}
}

// Start schedules the mastery sweep every reconcileInterval and the session
// prune every pruneInterval, then runs them without blocking.
func (s *Scheduler) Start(ctx context.Context, reconcileInterval, pruneInterval time.Duration) error {
	if reconcileInterval > 0 {
		if _, err := s.scheduler.Every(reconcileInterval).Do(s.reconcile, ctx); err != nil {
			return fmt.Errorf("schedule mastery reconcile > %w", err)
		}
	}
	if pruneInterval > 0 {
		if _, err := s.scheduler.Every(pruneInterval).Do(s.prune); err != nil {
			return fmt.Errorf("schedule session prune > %w", err)
		}
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) reconcile(ctx context.Context) {
	updated, err := s.reconciler.RecomputeAll(ctx)
	if err != nil {
		slog.Default().Warn("mastery reconcile finished with errors",
			slog.Int("updated", updated),
			slog.Any("error", err),
		)
		return
	}
	slog.Default().Debug("mastery reconcile finished", slog.Int("updated", updated))
}

func (s *Scheduler) prune() {
	if n := s.pruner.Prune(); n > 0 {
		slog.Default().Info("pruned idle review sessions", slog.Int("count", n))
	}
}
