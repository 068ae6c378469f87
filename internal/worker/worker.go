package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HandlerRegistrar subscribes event handlers, e.g. the notification service.
type HandlerRegistrar interface {
	RegisterHandlers()
}

// Dependencies for the background jobs.
type Dependencies struct {
	Notifications   HandlerRegistrar
	Overdue         OverdueMarker
	OverdueInterval time.Duration
	Logger          *zap.Logger
}

// Start registers the notification handlers and launches the overdue sweeper.
// The returned WaitGroup completes once every job has stopped after ctx ends.
func Start(ctx context.Context, deps Dependencies) *sync.WaitGroup {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if deps.Notifications != nil {
		deps.Notifications.RegisterHandlers()
		logger.Info("notification handlers registered")
	}

	var wg sync.WaitGroup
	if deps.Overdue != nil {
		w := NewOverdueWorker(deps.Overdue, deps.OverdueInterval, logger.Named("overdue"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}
	return &wg
}
