package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 20))
	assert.Equal(t, int64(1), TotalPages(20, 20))
	assert.Equal(t, int64(2), TotalPages(21, 20))
	assert.Equal(t, int64(0), TotalPages(5, 0))
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0, 10)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(10), limit)

	page, limit = NormalizePage(3, 1000000000, 10)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, MaxPageLimit, limit)
}

func TestSkip(t *testing.T) {
	for _, tc := range []struct {
		page, limit, skip int64
		ok                bool
	}{
		{1, 20, 0, true},
		{0, 20, 0, true},
		{3, 50, 100, true},
		{922337203685477581, 20, 0, false},
		{math.MaxInt64, MaxPageLimit, 0, false},
		{math.MaxInt64/20 + 1, 20, math.MaxInt64 / 20 * 20, true},
	} {
		skip, ok := Skip(tc.page, tc.limit)
		assert.Equal(t, tc.ok, ok, "page %d limit %d", tc.page, tc.limit)
		assert.Equal(t, tc.skip, skip, "page %d limit %d", tc.page, tc.limit)
		assert.GreaterOrEqual(t, skip, int64(0))
	}
}
