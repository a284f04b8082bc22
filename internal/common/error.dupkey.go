package common

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// dup key: { mobileNumber: "9876543210" }
	dupKeyFieldPattern = regexp.MustCompile(`dup key: \{\s*"?([A-Za-z0-9_.]+)"?\s*:`)
	// index: mobileNumber_unique dup key: ...
	dupKeyIndexPattern = regexp.MustCompile(`index: ([A-Za-z0-9_.]+?)(?:_unique|_-?1)? dup key`)
)

// DuplicateKeyField extracts the offending field of a duplicate-key error. The second
// return value reports whether err is a duplicate-key error at all; the field may still be
// empty when the server did not say which index fired.
func DuplicateKeyField(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Code.Code != ErrCodeDatabaseDuplicate.Code {
			return "", false
		}
		if details, ok := appErr.Details.(map[string]any); ok {
			if field, ok := details["field"].(string); ok {
				return field, true
			}
		}
		return "", true
	}

	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if field := keyPatternField(we.Raw); field != "" {
				return field, true
			}
			if field := fieldFromMessage(we.Message); field != "" {
				return field, true
			}
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if field := keyPatternField(cmdErr.Raw); field != "" {
			return field, true
		}
	}

	return fieldFromMessage(err.Error()), true
}

// IsDuplicateOn reports whether err is a duplicate-key violation on field.
func IsDuplicateOn(err error, field string) bool {
	got, ok := DuplicateKeyField(err)
	return ok && got == field
}

func keyPatternField(raw bson.Raw) string {
	if len(raw) == 0 {
		return ""
	}
	val, err := raw.LookupErr("keyPattern")
	if err != nil {
		return ""
	}
	doc, ok := val.DocumentOK()
	if !ok {
		return ""
	}
	elems, err := doc.Elements()
	if err != nil || len(elems) == 0 {
		return ""
	}
	return elems[0].Key()
}

func fieldFromMessage(msg string) string {
	if m := dupKeyFieldPattern.FindStringSubmatch(msg); len(m) == 2 {
		return m[1]
	}
	if m := dupKeyIndexPattern.FindStringSubmatch(msg); len(m) == 2 {
		return m[1]
	}
	return ""
}
