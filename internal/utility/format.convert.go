package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormatBytes renders a byte count with a binary unit, one decimal above 1 KB.
//
// Example:
//
//	FormatBytes(512)      // "512 B"
//	FormatBytes(10 << 20) // "10.0 MB"
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// String2ObjectID parses a hex ObjectID, returning NilObjectID when id is malformed.
func String2ObjectID(id string) primitive.ObjectID {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectID
}

// ParseObjectIDList parses a comma-separated list of ObjectIDs. Malformed entries are dropped;
// the result is nil when none is valid.
func ParseObjectIDList(csv string) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, part := range SplitCSV(csv) {
		if id, err := primitive.ObjectIDFromHex(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
