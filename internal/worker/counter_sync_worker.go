// Package worker runs the server's background jobs.
package worker

import (
	"context"
	"sort"
	"time"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// SyncFunc raises the sequence counters and returns their values by entity.
type SyncFunc func(ctx context.Context) (map[string]int, error)

// CounterSyncWorker periodically raises the counter-backed sequences above the highest
// stored identifier, covering rows written by imports or other tools while the server runs.
type CounterSyncWorker struct {
	sync     SyncFunc
	interval time.Duration
	last     map[string]int
}

// NewCounterSyncWorker creates the worker. A non-positive interval defaults to one hour.
func NewCounterSyncWorker(interval time.Duration, sync SyncFunc) *CounterSyncWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CounterSyncWorker{sync: sync, interval: interval, last: map[string]int{}}
}

// Start runs the worker until ctx is cancelled.
func (w *CounterSyncWorker) Start(ctx context.Context) {
	log := logger.WithModule("worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithField("interval", w.interval.String()).Info("Starting counter sync worker")
	for {
		select {
		case <-ctx.Done():
			log.Info("Counter sync worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs one sync and returns the entities whose counter moved. Failures and
// panics are logged; the next tick retries.
func (w *CounterSyncWorker) RunOnce(ctx context.Context) (moved []string) {
	log := logger.WithModule("worker")
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Counter sync panicked")
			moved = nil
		}
	}()

	values, err := w.sync(ctx)
	if err != nil {
		log.WithError(err).Error("Counter sync failed")
		return nil
	}
	for entity, value := range values {
		if prev, ok := w.last[entity]; ok && prev != value {
			moved = append(moved, entity)
		}
		w.last[entity] = value
	}
	sort.Strings(moved)
	if len(moved) > 0 {
		log.WithField("entities", moved).Info("Sequence counters changed since last sync")
	}
	return moved
}
