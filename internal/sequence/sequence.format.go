// Package sequence allocates the human-readable identifiers (businessId0001, bdeid0003-...)
// carried by every record next to its ObjectID.
package sequence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultWidth is the zero-padded width of the numeric part.
const DefaultWidth = 4

// Format renders prefix followed by n zero-padded to width. Numbers wider than width are
// written in full.
func Format(prefix string, n int, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

// Parse extracts the numeric part of id. Anything after the first '-' following the digits
// (the BDE time suffix) is ignored.
func Parse(prefix, id string) (int, error) {
	if !strings.HasPrefix(id, prefix) {
		return 0, fmt.Errorf("identifier %q does not start with %q", id, prefix)
	}
	digits := id[len(prefix):]
	if i := strings.IndexByte(digits, '-'); i >= 0 {
		digits = digits[:i]
	}
	if digits == "" {
		return 0, fmt.Errorf("identifier %q has no numeric part", id)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("identifier %q has a malformed numeric part", id)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("identifier %q has a malformed numeric part", id)
	}
	return n, nil
}

// CodeKey returns id without its allocation-time suffix: bdeid0003-150320241030 becomes
// bdeid0003. Identifiers without a suffix are returned unchanged.
func CodeKey(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}

// LowestFree returns the smallest positive integer not present in existing.
func LowestFree(existing []int) int {
	sorted := make([]int, len(existing))
	copy(sorted, existing)
	sort.Ints(sorted)

	candidate := 1
	for _, e := range sorted {
		if e < candidate {
			// duplicates and non-positive values
			continue
		}
		if candidate < e {
			return candidate
		}
		candidate++
	}
	return candidate
}

// BDESuffix is the allocation-time suffix of BDE codes: -DDMMYYYYHHmm.
func BDESuffix(t time.Time) string {
	return "-" + t.Format("02012006") + t.Format("1504")
}
