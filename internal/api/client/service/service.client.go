// Package clientsvc manages clients.
package clientsvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	clientdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// KeyField is the human-readable identifier of a client.
const KeyField = "clientId"

// ClientService manages the clients collection.
type ClientService struct {
	*basesvc.BaseServiceMongoImpl[models.Client]
	allocators func(entity string) (sequence.Allocator, error)
}

// NewClientService creates the service over the registered clients collection.
func NewClientService() (*ClientService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Clients)
	if !exist {
		return nil, fmt.Errorf("failed to get clients collection: %w", common.ErrNotFound)
	}
	return &ClientService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Client](collection),
		allocators:           sequence.For,
	}, nil
}

func cleanServices(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" && !utility.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// NewClient builds the client described by input.
func NewClient(input *clientdto.ClientCreateInput, createdBy primitive.ObjectID) models.Client {
	return models.Client{
		Name:         strings.TrimSpace(input.Name),
		MobileNumber: strings.ReplaceAll(input.MobileNumber, " ", ""),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Address:      input.Address,
		Business:     utility.String2ObjectID(input.Business),
		Services:     cleanServices(input.Services),
		DealAmount:   input.DealAmount,
		Remarks:      input.Remarks,
		CreatedBy:    createdBy,
	}
}

// Create stores a client under the next counter value.
func (s *ClientService) Create(ctx context.Context, input *clientdto.ClientCreateInput, createdBy primitive.ObjectID) (models.Client, error) {
	client := NewClient(input, createdBy)
	alloc, err := s.allocators(sequence.EntityClient)
	if err != nil {
		return models.Client{}, err
	}
	return sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.Client, error) {
		client.ClientID = id
		return s.InsertOne(ctx, client)
	})
}

// UpdateSet collects the non-empty fields of input.
func UpdateSet(input *clientdto.ClientUpdateInput) bson.M {
	set := bson.M{}
	for _, f := range []struct{ field, value string }{
		{"name", strings.TrimSpace(input.Name)},
		{"mobileNumber", strings.ReplaceAll(input.MobileNumber, " ", "")},
		{"email", strings.ToLower(strings.TrimSpace(input.Email))},
		{"address", input.Address},
		{"remarks", input.Remarks},
	} {
		if f.value != "" {
			set[f.field] = f.value
		}
	}
	if input.Services != nil {
		set["services"] = cleanServices(input.Services)
	}
	if input.DealAmount != nil {
		set["dealAmount"] = *input.DealAmount
	}
	return set
}

// Update applies input to the client matching key.
func (s *ClientService) Update(ctx context.Context, key string, input *clientdto.ClientUpdateInput) (models.Client, error) {
	filter := basesvc.KeyFilter(KeyField, key)
	set := UpdateSet(input)
	if len(set) == 0 {
		return s.FindOne(ctx, filter, nil)
	}
	return s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set})
}
