package clientsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	clientdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/dto"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

func TestNewClient(t *testing.T) {
	by := primitive.NewObjectID()
	biz := primitive.NewObjectID()
	c := NewClient(&clientdto.ClientCreateInput{
		Name:         "  Das Traders ",
		MobileNumber: "98300 12345",
		Email:        " Sales@Das.IN",
		Business:     biz.Hex(),
		Services:     []string{"SEO", " ", "SEO", "Website "},
		DealAmount:   25000,
	}, by)

	assert.Equal(t, "Das Traders", c.Name)
	assert.Equal(t, "9830012345", c.MobileNumber)
	assert.Equal(t, "sales@das.in", c.Email)
	assert.Equal(t, biz, c.Business)
	assert.Equal(t, []string{"SEO", "Website"}, c.Services)
	assert.Equal(t, by, c.CreatedBy)
	assert.Empty(t, c.ClientID)
}

func TestUpdateSet(t *testing.T) {
	assert.Equal(t, bson.M{}, UpdateSet(&clientdto.ClientUpdateInput{}))

	amount := 0.0
	set := UpdateSet(&clientdto.ClientUpdateInput{Remarks: "renewed", DealAmount: &amount, Services: []string{}})
	assert.Equal(t, bson.M{"remarks": "renewed", "dealAmount": 0.0, "services": []string(nil)}, set)
}

func TestClientIDsUseCounter(t *testing.T) {
	for _, def := range sequence.Definitions(global.DefaultColNames()) {
		if def.Entity == sequence.EntityClient {
			assert.Equal(t, sequence.StrategyCounter, def.Strategy)
			assert.Equal(t, KeyField, def.Field)
			return
		}
	}
	t.Fatal("client definition missing")
}
