package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

func TestPositiveInt(t *testing.T) {
	assert.Equal(t, 20, PositiveInt("", 20))
	assert.Equal(t, 20, PositiveInt("0", 20))
	assert.Equal(t, 20, PositiveInt("-5", 20))
	assert.Equal(t, 20, PositiveInt("abc", 20))
	assert.Equal(t, 7, PositiveInt(" 7 ", 20))
}

func TestParseObjectIDList(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ids := ParseObjectIDList(a.Hex() + ", nope ," + b.Hex() + ",,")
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)

	assert.Nil(t, ParseObjectIDList("x,y"))
	assert.Nil(t, ParseObjectIDList(""))
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	d, ok := ParseDate("2024-03-05", loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), d)

	d, ok = ParseDate("2024-03-05T10:00:00Z", loc)
	require.True(t, ok)
	assert.Equal(t, 10, d.UTC().Hour())

	_, ok = ParseDate("05/03/2024", loc)
	assert.False(t, ok)
	_, ok = ParseDate("", loc)
	assert.False(t, ok)
}

func TestEndOfDay(t *testing.T) {
	d := time.Date(2024, 3, 5, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), StartOfDay(d))
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), EndOfDay(d))
}

func TestToMapAndStripEmpty(t *testing.T) {
	type patch struct {
		Name   string `bson:"name"`
		Status string `bson:"status"`
		Count  int    `bson:"count"`
	}
	m, err := ToMap(patch{Name: "Acme", Count: 2})
	require.NoError(t, err)
	assert.Contains(t, m, "status")

	StripEmpty(m)
	assert.Equal(t, "Acme", m["name"])
	assert.NotContains(t, m, "status")
	assert.Contains(t, m, "count")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "10.0 MB", FormatBytes(10<<20))
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(20*time.Millisecond, 0)
	defer c.Stop()

	c.Set("k", 1)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.sweep(time.Now())
	assert.Empty(t, c.items)
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Name   string `validate:"required"`
		Mobile string `validate:"mobile"`
	}
	err := ValidateStruct(input{Mobile: "12"})
	require.Error(t, err)

	appErr, ok := err.(*common.Error)
	require.True(t, ok)
	details := appErr.Details.(map[string]string)
	assert.Equal(t, "required", details["name"])
	assert.Equal(t, "mobile", details["mobile"])

	assert.NoError(t, ValidateStruct(input{Name: "x", Mobile: "9876543210"}))
}
