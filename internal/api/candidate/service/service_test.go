package candidatesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	candidatedto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/models"
)

func TestNewCandidate(t *testing.T) {
	city := primitive.NewObjectID()
	c := NewCandidate(&candidatedto.CandidateCreateInput{
		Name:         "Rahul Sen ",
		MobileNumber: "+91 98300 11111",
		Email:        "RAHUL@x.com",
		Position:     " Telecaller",
		City:         city.Hex(),
	})
	assert.Equal(t, "Rahul Sen", c.Name)
	assert.Equal(t, "+919830011111", c.MobileNumber)
	assert.Equal(t, "rahul@x.com", c.Email)
	assert.Equal(t, "Telecaller", c.Position)
	assert.Equal(t, city, c.City)
	assert.Equal(t, models.StatusNew, c.Status)
	assert.Nil(t, c.Resume)
}

func TestUpdateSet(t *testing.T) {
	assert.Equal(t, bson.M{}, UpdateSet(&candidatedto.CandidateUpdateInput{City: "not-an-id"}))
	assert.Equal(t, bson.M{"status": models.StatusHired, "experience": "3 years"},
		UpdateSet(&candidatedto.CandidateUpdateInput{Status: models.StatusHired, Experience: " 3 years "}))
}
