package referencesvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	referencedto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/dto"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

type usageStub struct {
	n      int64
	err    error
	filter interface{}
}

func (u *usageStub) CountDocuments(_ context.Context, filter interface{}) (int64, error) {
	u.filter = filter
	return u.n, u.err
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "New Delhi", NormalizeName("  New   Delhi \t"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestUpdateSet(t *testing.T) {
	off := false
	assert.Equal(t, bson.M{}, UpdateSet(&referencedto.ReferenceUpdateInput{}))
	assert.Equal(t, bson.M{"name": "Howrah", "active": false},
		UpdateSet(&referencedto.ReferenceUpdateInput{Name: " Howrah ", Active: &off}))
}

func TestDropdownPipeline(t *testing.T) {
	p := DropdownPipeline("cityId")
	require.Len(t, p, 3)
	assert.Equal(t, bson.M{"active": true}, p[0]["$match"])
	assert.Equal(t, bson.M{"_id": 1, "code": "$cityId", "name": 1}, p[1]["$project"])
}

func TestCheckUnused(t *testing.T) {
	id := primitive.NewObjectID()

	u := &usageStub{}
	require.NoError(t, CheckUnused(context.Background(), u, "city", id))
	assert.Equal(t, bson.M{"city": id}, u.filter)

	u.n = 3
	assert.ErrorIs(t, CheckUnused(context.Background(), u, "city", id), ErrInUse)

	boom := errors.New("down")
	u.err = boom
	assert.ErrorIs(t, CheckUnused(context.Background(), u, "city", id), boom)
}

func TestKinds(t *testing.T) {
	c := Cities.New("cityId0003", "Kolkata", true)
	assert.Equal(t, "cityId0003", c.CityID)
	assert.True(t, c.Active)

	for _, k := range []struct{ entity, field string }{
		{Cities.Entity, Cities.KeyField},
		{Categories.Entity, Categories.KeyField},
		{Sources.Entity, Sources.KeyField},
	} {
		found := false
		for _, def := range sequence.Definitions(global.DefaultColNames()) {
			if def.Entity == k.entity {
				found = true
				assert.Equal(t, k.field, def.Field)
				assert.Equal(t, sequence.StrategyScan, def.Strategy)
			}
		}
		assert.True(t, found, k.entity)
	}
}
