// Package contentsvc manages the website content collections.
package contentsvc

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// CleanList trims entries, drops blanks and duplicates and keeps order.
func CleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" && !utility.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

type field struct{ name, value string }

// setStrings adds every non-empty value to set.
func setStrings(set bson.M, fields ...field) bson.M {
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			set[f.name] = v
		}
	}
	return set
}
