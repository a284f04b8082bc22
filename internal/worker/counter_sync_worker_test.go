package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceReportsMovedCounters(t *testing.T) {
	values := []map[string]int{
		{"business": 10, "client": 3},
		{"business": 12, "client": 3},
	}
	calls := 0
	w := NewCounterSyncWorker(time.Minute, func(context.Context) (map[string]int, error) {
		v := values[calls]
		calls++
		return v, nil
	})

	assert.Empty(t, w.RunOnce(context.Background()))
	assert.Equal(t, []string{"business"}, w.RunOnce(context.Background()))
}

func TestRunOnceSurvivesFailures(t *testing.T) {
	w := NewCounterSyncWorker(0, func(context.Context) (map[string]int, error) {
		return nil, errors.New("down")
	})
	assert.Equal(t, time.Hour, w.interval)
	assert.Nil(t, w.RunOnce(context.Background()))

	w.sync = func(context.Context) (map[string]int, error) { panic("boom") }
	assert.NotPanics(t, func() { w.RunOnce(context.Background()) })
}

func TestStartStopsOnCancel(t *testing.T) {
	var runs int32
	w := NewCounterSyncWorker(5*time.Millisecond, func(context.Context) (map[string]int, error) {
		atomic.AddInt32(&runs, 1)
		return map[string]int{}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
