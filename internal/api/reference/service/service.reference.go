// Package referencesvc manages the lookup collections (cities, categories, lead sources).
// The three share one generic service parameterised by a Kind.
package referencesvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	referencedto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// Kind describes one lookup collection.
type Kind[T any] struct {
	Resource      string // audit resource name
	Entity        string // allocator entity
	KeyField      string // human-readable identifier field
	Collection    string
	BusinessField string // field of a business that references this kind
	New           func(code, name string, active bool) T
}

// Cities, Categories and Sources are the lookup kinds.
var (
	Cities = Kind[models.City]{
		Resource: "city", Entity: sequence.EntityCity, KeyField: "cityId",
		Collection: global.MongoDB_ColNames.Cities, BusinessField: "city",
		New: func(code, name string, active bool) models.City {
			return models.City{CityID: code, Name: name, Active: active}
		},
	}
	Categories = Kind[models.Category]{
		Resource: "category", Entity: sequence.EntityCategory, KeyField: "categoryId",
		Collection: global.MongoDB_ColNames.Categories, BusinessField: "category",
		New: func(code, name string, active bool) models.Category {
			return models.Category{CategoryID: code, Name: name, Active: active}
		},
	}
	Sources = Kind[models.Source]{
		Resource: "source", Entity: sequence.EntitySource, KeyField: "sourceId",
		Collection: global.MongoDB_ColNames.Sources, BusinessField: "source",
		New: func(code, name string, active bool) models.Source {
			return models.Source{SourceID: code, Name: name, Active: active}
		},
	}
)

// ErrInUse rejects deleting an entry businesses still refer to.
var ErrInUse = common.NewError(common.ErrCodeBusinessOperation, "Entry is referenced by existing businesses", common.StatusConflict, nil)

// UsageCounter counts the businesses matching a filter.
type UsageCounter interface {
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type collectionCounter struct{ col *mongo.Collection }

func (c collectionCounter) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	n, err := c.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return n, nil
}

// ReferenceService manages one lookup collection.
type ReferenceService[T any] struct {
	*basesvc.BaseServiceMongoImpl[T]
	Kind       Kind[T]
	usage      UsageCounter
	allocators func(entity string) (sequence.Allocator, error)
}

// NewReferenceService creates the service of kind over its registered collection.
func NewReferenceService[T any](kind Kind[T]) (*ReferenceService[T], error) {
	collection, exist := global.RegistryCollections.Get(kind.Collection)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %w", kind.Collection, common.ErrNotFound)
	}
	businesses, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Businesses)
	if !exist {
		return nil, fmt.Errorf("failed to get businesses collection: %w", common.ErrNotFound)
	}
	return &ReferenceService[T]{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[T](collection),
		Kind:                 kind,
		usage:                collectionCounter{businesses},
		allocators:           sequence.For,
	}, nil
}

// NormalizeName collapses inner whitespace and trims name.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Create stores a new entry under a freshly allocated identifier. New entries are active
// unless input says otherwise.
func (s *ReferenceService[T]) Create(ctx context.Context, input *referencedto.ReferenceCreateInput) (T, error) {
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	name := NormalizeName(input.Name)

	alloc, err := s.allocators(s.Kind.Entity)
	if err != nil {
		var zero T
		return zero, err
	}
	return sequence.Insert(ctx, alloc, func(ctx context.Context, code string) (T, error) {
		return s.InsertOne(ctx, s.Kind.New(code, name, active))
	})
}

// UpdateSet collects the changes of input.
func UpdateSet(input *referencedto.ReferenceUpdateInput) bson.M {
	set := bson.M{}
	if name := NormalizeName(input.Name); name != "" {
		set["name"] = name
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	return set
}

// Update renames or toggles the entry matching key.
func (s *ReferenceService[T]) Update(ctx context.Context, key string, input *referencedto.ReferenceUpdateInput) (T, error) {
	filter := basesvc.KeyFilter(s.Kind.KeyField, key)
	set := UpdateSet(input)
	if len(set) == 0 {
		return s.FindOne(ctx, filter, nil)
	}
	return s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set})
}

// DropdownPipeline selects the active entries as options sorted by name.
func DropdownPipeline(keyField string) []bson.M {
	return []bson.M{
		{"$match": bson.M{"active": true}},
		{"$project": bson.M{"_id": 1, "code": "$" + keyField, "name": 1}},
		{"$sort": bson.D{{Key: "name", Value: 1}}},
	}
}

// Dropdown returns the active entries for selection lists.
func (s *ReferenceService[T]) Dropdown(ctx context.Context) ([]models.Option, error) {
	options := []models.Option{}
	if err := s.Aggregate(ctx, DropdownPipeline(s.Kind.KeyField), &options); err != nil {
		return nil, err
	}
	return options, nil
}

// CheckUnused returns ErrInUse when a business refers to id.
func CheckUnused(ctx context.Context, usage UsageCounter, field string, id primitive.ObjectID) error {
	n, err := usage.CountDocuments(ctx, bson.M{field: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	return nil
}

// Delete removes the entry matching key unless a business still refers to it.
func (s *ReferenceService[T]) Delete(ctx context.Context, key string) (T, error) {
	var zero T
	filter := basesvc.KeyFilter(s.Kind.KeyField, key)
	ids := []struct {
		ID primitive.ObjectID `bson:"_id"`
	}{}
	if err := s.Aggregate(ctx, []bson.M{{"$match": filter}, {"$project": bson.M{"_id": 1}}}, &ids); err != nil {
		return zero, err
	}
	if len(ids) == 0 {
		return zero, common.ErrNotFound
	}
	if err := CheckUnused(ctx, s.usage, s.Kind.BusinessField, ids[0].ID); err != nil {
		return zero, err
	}
	return s.DeleteById(ctx, ids[0].ID)
}
