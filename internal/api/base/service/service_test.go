package basesvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

func TestKeyFilter(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": id}, KeyFilter("businessId", id.Hex()))
	assert.Equal(t, bson.M{"businessId": "businessId0007"}, KeyFilter("businessId", "businessId0007"))
}

func TestToUpdateData(t *testing.T) {
	u, err := ToUpdateData(bson.M{"name": "Acme", "email": ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Acme"}, u.Set)

	u, err = ToUpdateData(bson.M{"$set": bson.M{"a": 1}, "$unset": bson.M{"b": ""}})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"a": 1}, bson.M(u.Set))
	assert.Equal(t, bson.M{"b": ""}, bson.M(u.Unset))
	assert.False(t, u.IsEmpty())

	assert.True(t, (&UpdateData{}).IsEmpty())
}

func TestExpectedDBError(t *testing.T) {
	assert.True(t, expectedDBError(common.ErrNotFound))
	assert.True(t, expectedDBError(common.NewDuplicateError("mobileNumber")))
	assert.False(t, expectedDBError(common.ErrConnection))
	assert.False(t, expectedDBError(errors.New("socket closed")))
}
