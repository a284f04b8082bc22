package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func dupWriteException(t *testing.T, raw bson.M, msg string) error {
	t.Helper()
	var rawDoc bson.Raw
	if raw != nil {
		b, err := bson.Marshal(raw)
		require.NoError(t, err)
		rawDoc = b
	}
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Index:   0,
			Code:    11000,
			Message: msg,
			Raw:     rawDoc,
		}},
	}
}

func TestDuplicateKeyField_FromKeyPattern(t *testing.T) {
	err := dupWriteException(t, bson.M{
		"code":       11000,
		"keyPattern": bson.M{"mobileNumber": 1},
		"keyValue":   bson.M{"mobileNumber": "9876543210"},
	}, "E11000 duplicate key error")

	field, ok := DuplicateKeyField(err)
	assert.True(t, ok)
	assert.Equal(t, "mobileNumber", field)
}

func TestDuplicateKeyField_FromMessage(t *testing.T) {
	err := dupWriteException(t, nil,
		`E11000 duplicate key error collection: crm.businesses index: businessId_unique dup key: { businessId: "businessId0004" }`)

	field, ok := DuplicateKeyField(err)
	assert.True(t, ok)
	assert.Equal(t, "businessId", field)
}

func TestDuplicateKeyField_FromLegacyIndexName(t *testing.T) {
	err := dupWriteException(t, nil, `E11000 duplicate key error index: email_1 dup key: { : "a@b.c" }`)
	field, ok := DuplicateKeyField(err)
	assert.True(t, ok)
	assert.Equal(t, "email", field)
}

func TestDuplicateKeyField_NotDuplicate(t *testing.T) {
	_, ok := DuplicateKeyField(errors.New("boom"))
	assert.False(t, ok)

	_, ok = DuplicateKeyField(nil)
	assert.False(t, ok)
}

func TestConvertMongoError_Duplicate(t *testing.T) {
	err := dupWriteException(t, bson.M{"keyPattern": bson.M{"mobileNumber": 1}}, "E11000 duplicate key error")

	converted := ConvertMongoError(err)
	var appErr *Error
	require.True(t, errors.As(converted, &appErr))
	assert.Equal(t, StatusConflict, appErr.StatusCode)
	assert.Equal(t, "mobileNumber already exists", appErr.Message)
	assert.Equal(t, map[string]any{"field": "mobileNumber"}, appErr.Details)

	// the converted error still carries the field
	assert.True(t, IsDuplicateOn(converted, "mobileNumber"))
	assert.False(t, IsDuplicateOn(converted, "businessId"))
}

func TestConvertMongoError_GenericDuplicate(t *testing.T) {
	err := dupWriteException(t, nil, "E11000 duplicate key error")

	converted := ConvertMongoError(err)
	var appErr *Error
	require.True(t, errors.As(converted, &appErr))
	assert.Equal(t, "Duplicate key error", appErr.Message)
	assert.Nil(t, appErr.Details)
}

func TestConvertMongoError_NotFound(t *testing.T) {
	assert.True(t, errors.Is(ConvertMongoError(mongo.ErrNoDocuments), ErrNotFound))
	assert.True(t, errors.Is(ConvertMongoError(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), ErrNotFound))
	assert.Nil(t, ConvertMongoError(nil))
}

func TestConvertMongoError_PassesThroughAppErrors(t *testing.T) {
	assert.Same(t, ErrInvalidInput, ConvertMongoError(ErrInvalidInput))
}
