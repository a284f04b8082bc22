package sequence

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/metrics"
)

// memStore is an in-memory collection of identifiers with a unique index on the ID.
type memStore struct {
	mu  sync.Mutex
	ids map[string]bool
	err error
}

func newMemStore(ids ...string) *memStore {
	s := &memStore{ids: map[string]bool{}}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *memStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *memStore) insert(field string) func(ctx context.Context, id string) (string, error) {
	return func(ctx context.Context, id string) (string, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ids[id] {
			return "", common.NewDuplicateError(field)
		}
		s.ids[id] = true
		return id, nil
	}
}

func (s *memStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

type memCounters struct {
	mu     sync.Mutex
	values map[string]int
}

func newMemCounters() *memCounters { return &memCounters{values: map[string]int{}} }

func (c *memCounters) Increment(ctx context.Context, name string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name]++
	return c.values[name], nil
}

func (c *memCounters) Current(ctx context.Context, name string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name], nil
}

func (c *memCounters) Raise(ctx context.Context, name string, value int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value > c.values[name] {
		c.values[name] = value
	}
	return c.values[name], nil
}

func scan(store IDLister, prefix string) *ScanAllocator {
	return &ScanAllocator{Name: "candidate", Prefix: prefix, IDField: "candidateId", Width: 4, Store: store, Metrics: metrics.New()}
}

// ====================================
// FORMAT
// ====================================

func TestLowestFree(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{"empty", nil, 1},
		{"gap", []int{1, 2, 4}, 3},
		{"dense", []int{1, 2, 3}, 4},
		{"missing first", []int{2, 3}, 1},
		{"unsorted", []int{5, 1, 3, 2}, 4},
		{"duplicates", []int{1, 1, 2, 2, 3}, 4},
		{"zero ignored", []int{0, 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LowestFree(tt.existing))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "candidateId0007", Format("candidateId", 7, 4))
	assert.Equal(t, "candidateId10234", Format("candidateId", 10234, 4))
	assert.Equal(t, "cityId0001", Format("cityId", 1, 0))
}

func TestParse(t *testing.T) {
	n, err := Parse("candidateId", "candidateId0042")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = Parse("bdeid", "bdeid0003-150320241030")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"cityId0001", "candidateId", "candidateIdabc", "candidateId-1", "candidateId+3", "candidateId 12"} {
		_, err := Parse("candidateId", bad)
		assert.Error(t, err, bad)
	}
}

func TestCodeKey(t *testing.T) {
	assert.Equal(t, "bdeid0003", CodeKey("bdeid0003-150320241030"))
	assert.Equal(t, "adminId0001", CodeKey("adminId0001"))
}

func TestBDESuffix(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	assert.Equal(t, "-050320240907", BDESuffix(ts))
}

// ====================================
// SCAN ALLOCATOR
// ====================================

func TestScanAllocator_FillsLowestGap(t *testing.T) {
	store := newMemStore("candidateId0001", "candidateId0002", "candidateId0004")
	id, err := scan(store, "candidateId").Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "candidateId0003", id)
}

func TestScanAllocator_NumericOrderBeyondWidth(t *testing.T) {
	ids := []string{"candidateId10000"}
	for i := 1; i <= 9999; i++ {
		ids = append(ids, Format("candidateId", i, 4))
	}
	id, err := scan(newMemStore(ids...), "candidateId").Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "candidateId10001", id)
}

func TestScanAllocator_ReusesDeletedID(t *testing.T) {
	ctx := context.Background()
	store := newMemStore("candidateId0001", "candidateId0002", "candidateId0003")
	a := scan(store, "candidateId")

	store.delete("candidateId0001")
	id, err := Insert(ctx, a, store.insert("candidateId"))
	require.NoError(t, err)
	assert.Equal(t, "candidateId0001", id)

	id, err = Insert(ctx, a, store.insert("candidateId"))
	require.NoError(t, err)
	assert.Equal(t, "candidateId0004", id)
}

func TestScanAllocator_MalformedExistingID(t *testing.T) {
	store := newMemStore("candidateId0001", "candidateIdX")
	_, err := scan(store, "candidateId").Next(context.Background())
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.ErrCodeSequence.Code, appErr.Code.Code)
}

func TestScanAllocator_StoreError(t *testing.T) {
	store := newMemStore()
	store.err = common.ErrConnection
	_, err := scan(store, "candidateId").Next(context.Background())
	assert.ErrorIs(t, err, common.ErrConnection)
}

func TestScanAllocator_Suffix(t *testing.T) {
	store := newMemStore("bdeid0001-010120240000")
	a := &ScanAllocator{
		Name: "bde", Prefix: "bdeid", IDField: UserCodeField, Width: 4, Store: store,
		Suffix:  BDESuffix,
		Now:     func() time.Time { return time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC) },
		Metrics: metrics.New(),
	}
	id, err := a.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bdeid0002-311220252359", id)
	assert.Regexp(t, `^bdeid\d{4}-\d{8}\d{4}$`, id)
}

func TestScanAllocator_ConcurrentInsertsAreUnique(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := scan(store, "candidateId")

	var wg sync.WaitGroup
	results := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := Insert(ctx, a, store.insert("candidateId"))
			if assert.NoError(t, err) {
				results <- id
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for id := range results {
		assert.False(t, seen[id], id)
		seen[id] = true
	}
	assert.Len(t, seen, 20)
	assert.True(t, seen["candidateId0020"])
}

// ====================================
// COUNTER ALLOCATOR
// ====================================

func TestCounterAllocator_NeverReuses(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := &CounterAllocator{Name: "business", Prefix: "businessId", IDField: "businessId", Width: 4, Counters: newMemCounters(), Metrics: metrics.New()}

	var last string
	for i := 0; i < 3; i++ {
		id, err := Insert(ctx, a, store.insert("businessId"))
		require.NoError(t, err)
		last = id
	}
	assert.Equal(t, "businessId0003", last)

	store.delete(last)
	id, err := Insert(ctx, a, store.insert("businessId"))
	require.NoError(t, err)
	assert.Equal(t, "businessId0004", id)
}

func TestCounterAllocator_Peek(t *testing.T) {
	ctx := context.Background()
	counters := newMemCounters()
	a := &CounterAllocator{Name: "client", Prefix: "clientId", IDField: "clientId", Counters: counters, Metrics: metrics.New()}

	id, err := a.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, "clientId0001", id)

	_, err = a.Next(ctx)
	require.NoError(t, err)
	id, err = a.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, "clientId0002", id)
}

func TestSeedCounter(t *testing.T) {
	ctx := context.Background()
	counters := newMemCounters()
	a := &CounterAllocator{Name: "business", Prefix: "businessId", IDField: "businessId", Counters: counters, Metrics: metrics.New()}
	ids := newMemStore("businessId0002", "businessId0041", "legacy")

	n, err := SeedCounter(ctx, a, counters, ids)
	require.NoError(t, err)
	assert.Equal(t, 41, n)

	id, err := a.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "businessId0042", id)

	n, err = SeedCounter(ctx, a, counters, newMemStore("businessId0005"))
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

// ====================================
// INSERT
// ====================================

func TestInsert_RetriesOnIDConflict(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	counters := newMemCounters()
	m := metrics.New()
	a := &CounterAllocator{Name: "business", Prefix: "businessId", IDField: "businessId", Counters: counters, Metrics: m}

	// records imported without advancing the counter
	store.ids["businessId0001"] = true
	store.ids["businessId0002"] = true

	id, err := Insert(ctx, a, store.insert("businessId"))
	require.NoError(t, err)
	assert.Equal(t, "businessId0003", id)
}

func TestInsert_RetriesOnKeyConflict(t *testing.T) {
	ctx := context.Background()
	// another process stored bdeid0001 a minute earlier; the listing has not seen it yet
	keys := map[string]bool{"bdeid0001": true}
	minute := 0
	a := &ScanAllocator{
		Name: "bde", Prefix: "bdeid", IDField: UserCodeField, KeyField: CodeKeyField, Width: 4,
		Store:  newMemStore(),
		Suffix: BDESuffix,
		Now: func() time.Time {
			minute++
			return time.Date(2026, time.January, 1, 12, minute, 0, 0, time.UTC)
		},
		Metrics: metrics.New(),
	}

	var tried []string
	id, err := Insert(ctx, a, func(ctx context.Context, code string) (string, error) {
		tried = append(tried, code)
		if keys[CodeKey(code)] {
			// listing caught up with the stored record
			a.Store = newMemStore("bdeid0001-010120261159")
			return "", common.NewDuplicateError(CodeKeyField)
		}
		keys[CodeKey(code)] = true
		return code, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bdeid0001-010120261201", "bdeid0002-010120261202"}, tried)
	assert.Equal(t, "bdeid0002-010120261202", id)
}

func TestInsert_KeyConflictWithoutKeyFieldIsReturned(t *testing.T) {
	a := scan(newMemStore(), "candidateId")
	calls := 0
	_, err := Insert(context.Background(), a, func(ctx context.Context, id string) (string, error) {
		calls++
		return "", common.NewDuplicateError(CodeKeyField)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestInsert_OtherDuplicateIsReturned(t *testing.T) {
	a := &CounterAllocator{Name: "business", Prefix: "businessId", IDField: "businessId", Counters: newMemCounters(), Metrics: metrics.New()}
	calls := 0
	_, err := Insert(context.Background(), a, func(ctx context.Context, id string) (string, error) {
		calls++
		return "", common.NewDuplicateError("mobileNumber")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "mobileNumber already exists", err.Error())
}

func TestInsert_GivesUp(t *testing.T) {
	a := &CounterAllocator{Name: "business", Prefix: "businessId", IDField: "businessId", Counters: newMemCounters(), Metrics: metrics.New()}
	_, err := Insert(context.Background(), a, func(ctx context.Context, id string) (string, error) {
		return "", common.NewDuplicateError("businessId")
	})
	assert.True(t, IsExhausted(err))
}

// ====================================
// DEFINITIONS
// ====================================

func TestDefinitions(t *testing.T) {
	defs := Definitions(global.DefaultColNames())
	seen := map[string]bool{}
	for _, d := range defs {
		assert.False(t, seen[d.Entity], d.Entity)
		seen[d.Entity] = true
		assert.NotEmpty(t, d.Prefix)
		assert.NotEmpty(t, d.Collection)
		if d.Entity == EntityBusiness || d.Entity == EntityClient {
			assert.Equal(t, StrategyCounter, d.Strategy)
		} else {
			assert.Equal(t, StrategyScan, d.Strategy)
		}
	}
	assert.Len(t, defs, 16)
	assert.True(t, seen[EntityBDE])
	for _, d := range defs {
		if d.Suffix {
			assert.Equal(t, CodeKeyField, d.KeyField, d.Entity)
		}
	}
}
