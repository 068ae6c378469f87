package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OverdueMarker flips past-due tasks to overdue and reports how many changed.
type OverdueMarker interface {
	MarkOverdueTasks(ctx context.Context) (int, error)
}

// OverdueWorker periodically sweeps for past-due tasks.
type OverdueWorker struct {
	marker   OverdueMarker
	interval time.Duration
	logger   *zap.Logger
}

// NewOverdueWorker creates the worker. A non-positive interval disables it.
func NewOverdueWorker(marker OverdueMarker, interval time.Duration, logger *zap.Logger) *OverdueWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueWorker{marker: marker, interval: interval, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (w *OverdueWorker) Run(ctx context.Context) {
	if w.marker == nil || w.interval <= 0 {
		w.logger.Info("overdue worker disabled")
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("overdue worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	count, err := w.marker.MarkOverdueTasks(ctx)
	if err != nil {
		w.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		w.logger.Info("tasks marked overdue", zap.Int("count", count))
	}
}
