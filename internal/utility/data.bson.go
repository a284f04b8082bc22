package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap converts a struct to its BSON document form.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var out map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return out, nil
}

// StripEmpty removes keys whose value is an empty string or nil.
func StripEmpty(m map[string]interface{}) {
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			delete(m, k)
		case string:
			if val == "" {
				delete(m, k)
			}
		}
	}
}
