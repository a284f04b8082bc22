package utility

import (
	"strconv"
	"strings"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// GoProtect runs f and logs instead of crashing if it panics.
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logger.GetErrorLogger().WithField("panic", err).Error("Recovered from panic in background task")
		}
	}()
	f()
}

// Contains reports whether item is in slice.
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// PositiveInt parses s as a positive integer, returning def for empty, non-numeric,
// zero or negative input.
func PositiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// SplitCSV splits a comma-separated value, trimming blanks and dropping empty parts.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
