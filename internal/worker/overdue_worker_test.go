package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingMarker struct {
	calls atomic.Int32
	err   error
}

func (m *countingMarker) MarkOverdueTasks(context.Context) (int, error) {
	m.calls.Add(1)
	return 1, m.err
}

func TestOverdueWorkerSweepsUntilCancelled(t *testing.T) {
	marker := &countingMarker{}
	w := NewOverdueWorker(marker, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return marker.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestOverdueWorkerKeepsRunningAfterError(t *testing.T) {
	marker := &countingMarker{err: errors.New("db down")}
	w := NewOverdueWorker(marker, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	assert.Eventually(t, func() bool { return marker.calls.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestOverdueWorkerDisabled(t *testing.T) {
	marker := &countingMarker{}
	w := NewOverdueWorker(marker, 0, nil)

	w.Run(context.Background())
	assert.Equal(t, int32(0), marker.calls.Load())
}

type registrar struct{ calls int }

func (r *registrar) RegisterHandlers() { r.calls++ }

func TestStartRegistersAndStops(t *testing.T) {
	reg := &registrar{}
	marker := &countingMarker{}

	ctx, cancel := context.WithCancel(context.Background())
	wg := Start(ctx, Dependencies{
		Notifications:   reg,
		Overdue:         marker,
		OverdueInterval: time.Hour,
	})

	assert.Equal(t, 1, reg.calls)
	assert.Eventually(t, func() bool { return marker.calls.Load() == 1 }, time.Second, time.Millisecond)

	cancel()
	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}
