package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexedModel struct {
	Code      string `bson:"code" index:"unique"`
	Email     string `bson:"email,omitempty" index:"unique,sparse"`
	Name      string `bson:"name" index:"text"`
	Status    string `bson:"status" index:"single:1;compound:status_created"`
	CreatedAt int64  `bson:"createdAt" index:"compound:status_created,order:-1"`
	Ignored   string `bson:"-" index:"single:1"`
	Plain     string `bson:"plain"`
}

func TestIndexSpecs(t *testing.T) {
	specs, err := indexSpecs(indexedModel{})
	require.NoError(t, err)

	byName := map[string]indexSpec{}
	for _, s := range specs {
		byName[s.Name] = s
	}
	require.Len(t, byName, 5)

	code := byName["code_unique"]
	assert.Equal(t, bson.D{{Key: "code", Value: 1}}, code.Keys)
	assert.True(t, *code.Options.Unique)
	assert.Nil(t, code.Options.Sparse)

	email := byName["email_unique"]
	assert.True(t, *email.Options.Sparse)

	assert.Equal(t, bson.D{{Key: "name", Value: "text"}}, byName["name_text"].Keys)
	assert.Equal(t, bson.D{{Key: "status", Value: 1}}, byName["status_single"].Keys)
	assert.Equal(t, bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}, byName["status_created"].Keys)
}

func TestIndexSpecs_InvalidTTL(t *testing.T) {
	type bad struct {
		ExpiresAt int64 `bson:"expiresAt" index:"ttl:soon"`
	}
	_, err := indexSpecs(bad{})
	assert.Error(t, err)
}

func TestSameIndex(t *testing.T) {
	spec := indexSpec{
		Name:    "code_unique",
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName("code_unique").SetUnique(true),
	}
	assert.True(t, sameIndex(bson.M{"key": bson.M{"code": int32(1)}, "unique": true}, spec))
	assert.False(t, sameIndex(bson.M{"key": bson.M{"code": int32(1)}}, spec))
	assert.False(t, sameIndex(bson.M{"key": bson.M{"code": int32(-1)}, "unique": true}, spec))
	assert.False(t, sameIndex(bson.M{"key": bson.M{"code": int32(1)}, "unique": true, "sparse": true}, spec))
}
