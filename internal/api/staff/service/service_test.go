package staffsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestRoleFilter(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": oid, "role": models.RoleBDE}, RoleFilter(models.RoleBDE, oid.Hex()))
	assert.Equal(t, bson.M{sequence.UserCodeField: "telecallerId0004", "role": models.RoleTelecaller},
		RoleFilter(models.RoleTelecaller, "telecallerId0004"))
}

func TestToObjectIDs(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	assert.Nil(t, toObjectIDs(nil))
	assert.Equal(t, []primitive.ObjectID{}, toObjectIDs([]string{}))
	assert.Equal(t, []primitive.ObjectID{a, b}, toObjectIDs([]string{a.Hex(), "junk", b.Hex()}))
}
