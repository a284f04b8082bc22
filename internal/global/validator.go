package global

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// InitValidator creates the validator and registers the custom tags:
// no_xss, objectid, mobile, exists=<collection>.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("objectid", validateObjectID)
	_ = Validate.RegisterValidation("mobile", validateMobile)
	_ = Validate.RegisterValidation("exists", validateExists)
}

// validateNoXSS rejects values carrying common script injection markers.
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}

func validateMobile(fl validator.FieldLevel) bool {
	value := strings.ReplaceAll(fl.Field().String(), " ", "")
	if value == "" {
		return true
	}
	return mobilePattern.MatchString(value)
}

// validateExists checks that an ObjectID references a document in the named collection.
// Format: validate:"exists=cities"
func validateExists(fl validator.FieldLevel) bool {
	collectionName := fl.Param()
	if collectionName == "" {
		return false
	}

	var objID primitive.ObjectID
	switch v := fl.Field().Interface().(type) {
	case string:
		if v == "" {
			return true
		}
		var err error
		objID, err = primitive.ObjectIDFromHex(v)
		if err != nil {
			return false
		}
	case primitive.ObjectID:
		if v.IsZero() {
			return true
		}
		objID = v
	case *primitive.ObjectID:
		if v == nil {
			return true
		}
		objID = *v
	default:
		return false
	}

	collection, ok := RegistryCollections.Get(collectionName)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false
	}
	return count > 0
}
