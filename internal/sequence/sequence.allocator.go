package sequence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/metrics"
)

// Allocation strategies
const (
	StrategyScan    = "scan"
	StrategyCounter = "counter"
)

// MaxInsertAttempts bounds the re-allocations Insert performs after identifier conflicts.
const MaxInsertAttempts = 5

// ErrExhausted is returned when every insert attempt collided on the identifier.
var ErrExhausted = common.NewError(common.ErrCodeSequence, "Could not allocate a free identifier", common.StatusConflict, nil)

// Allocator produces identifiers for one entity.
type Allocator interface {
	// Entity is the name the allocator is registered under.
	Entity() string
	// Field is the document field holding the identifier.
	Field() string
	Strategy() string
	// Next allocates an identifier.
	Next(ctx context.Context) (string, error)
	// Peek returns the identifier Next would produce without consuming it.
	Peek(ctx context.Context) (string, error)
}

// IDLister returns the identifiers currently stored for an entity.
type IDLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// CounterStore holds named monotonically increasing counters.
type CounterStore interface {
	// Increment adds one to the counter, creating it at 1, and returns the new value.
	Increment(ctx context.Context, name string) (int, error)
	// Current returns the counter value, 0 when it does not exist.
	Current(ctx context.Context, name string) (int, error)
}

func observe(m *metrics.Metrics) *metrics.Metrics {
	if m == nil {
		return metrics.Default()
	}
	return m
}

// ====================================
// SCAN ALLOCATOR
// ====================================

// ScanAllocator hands out the lowest positive number not used by any stored identifier,
// so numbers freed by deletions are reused.
//
// It also implements sync.Locker; Insert holds the lock across allocation and insert so that
// two requests in this process never race for the same gap.
type ScanAllocator struct {
	Name     string
	Prefix   string
	IDField  string
	// KeyField, when set, holds the identifier without its suffix under a unique index.
	// Two processes can allocate the same number in different minutes; the suffixed
	// identifiers differ but the keys collide, and Insert allocates again.
	KeyField string
	Width    int
	Store    IDLister
	// Suffix, when set, is appended to every new identifier.
	Suffix   func(now time.Time) string
	Now      func() time.Time
	Metrics  *metrics.Metrics

	mu sync.Mutex
}

func (a *ScanAllocator) Entity() string   { return a.Name }
func (a *ScanAllocator) Field() string    { return a.IDField }
func (a *ScanAllocator) Strategy() string { return StrategyScan }

func (a *ScanAllocator) Lock()   { a.mu.Lock() }
func (a *ScanAllocator) Unlock() { a.mu.Unlock() }

func (a *ScanAllocator) Next(ctx context.Context) (string, error) {
	id, err := a.Peek(ctx)
	if err != nil {
		observe(a.Metrics).IDFailure(a.Name)
		return "", err
	}
	observe(a.Metrics).IDAllocated(a.Name, StrategyScan)
	return id, nil
}

func (a *ScanAllocator) Peek(ctx context.Context) (string, error) {
	ids, err := a.Store.ListIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("list %s identifiers: %w", a.Name, err)
	}

	numbers := make([]int, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		n, err := Parse(a.Prefix, id)
		if err != nil {
			return "", common.NewError(common.ErrCodeSequence, err.Error(), common.StatusInternalServerError, map[string]any{
				"entity": a.Name,
			})
		}
		numbers = append(numbers, n)
	}

	id := Format(a.Prefix, LowestFree(numbers), a.Width)
	if a.Suffix != nil {
		now := time.Now
		if a.Now != nil {
			now = a.Now
		}
		id += a.Suffix(now())
	}
	return id, nil
}

// ====================================
// COUNTER ALLOCATOR
// ====================================

// CounterAllocator derives identifiers from an atomically incremented counter. Numbers are
// never reused.
type CounterAllocator struct {
	Name     string
	Prefix   string
	IDField  string
	Width    int
	Sequence string // counter name, defaults to IDField
	Counters CounterStore
	Metrics  *metrics.Metrics
}

func (a *CounterAllocator) Entity() string   { return a.Name }
func (a *CounterAllocator) Field() string    { return a.IDField }
func (a *CounterAllocator) Strategy() string { return StrategyCounter }

func (a *CounterAllocator) sequence() string {
	if a.Sequence != "" {
		return a.Sequence
	}
	return a.IDField
}

func (a *CounterAllocator) Next(ctx context.Context) (string, error) {
	n, err := a.Counters.Increment(ctx, a.sequence())
	if err != nil {
		observe(a.Metrics).IDFailure(a.Name)
		return "", fmt.Errorf("increment counter %s: %w", a.sequence(), err)
	}
	observe(a.Metrics).IDAllocated(a.Name, StrategyCounter)
	return Format(a.Prefix, n, a.Width), nil
}

func (a *CounterAllocator) Peek(ctx context.Context) (string, error) {
	n, err := a.Counters.Current(ctx, a.sequence())
	if err != nil {
		return "", fmt.Errorf("read counter %s: %w", a.sequence(), err)
	}
	return Format(a.Prefix, n+1, a.Width), nil
}

// ====================================
// INSERT
// ====================================

// Insert allocates an identifier and passes it to insert. When insert fails with a duplicate
// key on the identifier field another identifier is allocated, up to MaxInsertAttempts times.
// Duplicates on any other field are returned to the caller unchanged.
func Insert[T any](ctx context.Context, a Allocator, insert func(ctx context.Context, id string) (T, error)) (T, error) {
	var zero T
	if l, ok := a.(sync.Locker); ok {
		l.Lock()
		defer l.Unlock()
	}

	log := logger.WithModule("sequence").WithField("entity", a.Entity())
	for attempt := 1; attempt <= MaxInsertAttempts; attempt++ {
		id, err := a.Next(ctx)
		if err != nil {
			return zero, err
		}

		result, err := insert(ctx, id)
		if err == nil {
			return result, nil
		}
		if !isIDConflict(err, a) {
			return zero, err
		}

		if m, ok := a.(interface{ metricsSink() *metrics.Metrics }); ok {
			m.metricsSink().IDConflict(a.Entity())
		} else {
			metrics.Default().IDConflict(a.Entity())
		}
		log.WithField("id", id).WithField("attempt", attempt).Warn("Identifier already taken, allocating again")
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
	}
	return zero, ErrExhausted
}

func isIDConflict(err error, a Allocator) bool {
	if common.IsDuplicateOn(err, a.Field()) {
		return true
	}
	if k, ok := a.(*ScanAllocator); ok && k.KeyField != "" {
		return common.IsDuplicateOn(err, k.KeyField)
	}
	return false
}

func (a *ScanAllocator) metricsSink() *metrics.Metrics    { return observe(a.Metrics) }
func (a *CounterAllocator) metricsSink() *metrics.Metrics { return observe(a.Metrics) }

// IsExhausted reports whether err is ErrExhausted.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}
