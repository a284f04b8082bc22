// Package basesvc provides the generic MongoDB repository every domain service embeds.
package basesvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// DefaultPageLimit is used by FindWithPagination when no positive limit is given.
const DefaultPageLimit int64 = 10

// UpdateData is a partial update document.
type UpdateData struct {
	Set      map[string]interface{} `bson:"$set,omitempty"`
	Unset    map[string]interface{} `bson:"$unset,omitempty"`
	Push     map[string]interface{} `bson:"$push,omitempty"`
	AddToSet map[string]interface{} `bson:"$addToSet,omitempty"`
	Pull     map[string]interface{} `bson:"$pull,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u *UpdateData) IsEmpty() bool {
	return len(u.Set) == 0 && len(u.Unset) == 0 && len(u.Push) == 0 && len(u.AddToSet) == 0 && len(u.Pull) == 0
}

// ToUpdateData converts data to an UpdateData. Maps already carrying operators are split by
// operator; anything else is wrapped in $set with empty strings removed.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	switch v := data.(type) {
	case *UpdateData:
		return v, nil
	case UpdateData:
		return &v, nil
	}

	var dataMap map[string]interface{}
	switch v := data.(type) {
	case bson.M:
		dataMap = v
	case map[string]interface{}:
		dataMap = v
	default:
		var err error
		if dataMap, err = utility.ToMap(data); err != nil {
			return nil, err
		}
	}

	if hasOperator(dataMap) {
		return &UpdateData{
			Set:      operatorMap(dataMap["$set"]),
			Unset:    operatorMap(dataMap["$unset"]),
			Push:     operatorMap(dataMap["$push"]),
			AddToSet: operatorMap(dataMap["$addToSet"]),
			Pull:     operatorMap(dataMap["$pull"]),
		}, nil
	}

	utility.StripEmpty(dataMap)
	return &UpdateData{Set: dataMap}, nil
}

func hasOperator(m map[string]interface{}) bool {
	for _, op := range []string{"$set", "$unset", "$push", "$addToSet", "$pull"} {
		if _, ok := m[op]; ok {
			return true
		}
	}
	return false
}

func operatorMap(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case bson.M:
		return m
	case map[string]interface{}:
		return m
	case bson.D:
		out := make(map[string]interface{}, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out
	}
	return nil
}

// ====================================
// INTERFACE AND STRUCT
// ====================================

// BaseServiceMongo is the repository contract shared by all collections.
type BaseServiceMongo[Model any] interface {
	InsertOne(ctx context.Context, data Model) (Model, error)

	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	FindByKey(ctx context.Context, field, key string) (Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[Model], error)

	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (Model, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (Model, error)

	DeleteOne(ctx context.Context, filter interface{}) (Model, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) (Model, error)

	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	Aggregate(ctx context.Context, pipeline interface{}, out interface{}) error
}

// BaseServiceMongoImpl implements BaseServiceMongo over one collection.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewBaseServiceMongo creates the repository of collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
		now:        time.Now,
	}
}

// Collection returns the underlying collection.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// expectedDBError reports whether err is a routine outcome callers handle themselves: a
// missing document or a duplicate key.
func expectedDBError(err error) bool {
	if errors.Is(err, common.ErrNotFound) {
		return true
	}
	_, dup := common.DuplicateKeyField(err)
	return dup
}

// dbError converts a driver error and logs it against the collection unless it is expected.
func (s *BaseServiceMongoImpl[T]) dbError(op string, err error) error {
	converted := common.ConvertMongoError(err)
	if !expectedDBError(converted) {
		logger.WithCollection(s.collection.Name()).WithField("op", op).WithError(err).Error("Database operation failed")
	}
	return converted
}

func emptyFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	if m, ok := filter.(bson.M); ok && len(m) == 0 {
		return bson.D{}
	}
	return filter
}

// ====================================
// INSERT
// ====================================

// InsertOne stores data with createdAt/updatedAt set and returns the stored document.
// Empty strings are dropped so that sparse unique indexes ignore them.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	for key, value := range dataMap {
		if str, ok := value.(string); ok && str == "" {
			delete(dataMap, key)
		}
	}

	now := s.now()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, s.dbError("InsertOne", err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, s.dbError("InsertOne", err)
	}
	return created, nil
}

// ====================================
// FIND
// ====================================

// FindOne returns the first document matching filter, ErrNotFound when none does.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero, result T
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, emptyFilter(filter), opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, s.dbError("FindOne", err)
	}
	return result, nil
}

// Find returns every matching document, never nil.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, emptyFilter(filter), opts)
	if err != nil {
		return nil, s.dbError("Find", err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, s.dbError("Find", err)
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// FindOneById looks a document up by _id.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// KeyFilter matches either the _id (when key is an ObjectID) or the human-readable
// identifier stored in field.
func KeyFilter(field, key string) bson.M {
	if id, err := primitive.ObjectIDFromHex(key); err == nil {
		return bson.M{"_id": id}
	}
	return bson.M{field: key}
}

// FindByKey looks a document up by _id or by its human-readable identifier.
func (s *BaseServiceMongoImpl[T]) FindByKey(ctx context.Context, field, key string) (T, error) {
	return s.FindOne(ctx, KeyFilter(field, key), nil)
}

// FindWithPagination returns one page of documents matching filter together with totals.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	filter = emptyFilter(filter)
	if opts == nil {
		opts = options.Find()
	}
	page, limit = basemodels.NormalizePage(page, limit, DefaultPageLimit)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, s.dbError("FindWithPagination", err)
	}

	items := []T{}
	if skip, ok := basemodels.Skip(page, limit); ok {
		opts.SetSkip(skip)
		opts.SetLimit(limit)
		if items, err = s.Find(ctx, filter, opts); err != nil {
			return nil, err
		}
	}

	return &basemodels.PaginateResult[T]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
		TotalPage: basemodels.TotalPages(total, limit),
	}, nil
}

// ====================================
// UPDATE
// ====================================

// UpdateOne applies update to the first document matching filter and returns the result.
// An update that changes nothing returns the current document without a write.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (T, error) {
	var zero T

	updateData, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	if updateData.IsEmpty() {
		return s.FindOne(ctx, filter, nil)
	}
	if updateData.Set == nil {
		updateData.Set = make(map[string]interface{})
	}
	updateData.Set["updatedAt"] = s.now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated T
	if err := s.collection.FindOneAndUpdate(ctx, emptyFilter(filter), updateData, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, s.dbError("UpdateOne", err)
	}
	return updated, nil
}

// UpdateById applies update to the document with the given _id.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, update)
}

// ====================================
// DELETE
// ====================================

// DeleteOne removes the first document matching filter and returns it.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) (T, error) {
	var zero, deleted T
	if err := s.collection.FindOneAndDelete(ctx, emptyFilter(filter)).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, s.dbError("DeleteOne", err)
	}
	return deleted, nil
}

// DeleteById removes the document with the given _id.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// ====================================
// OTHER
// ====================================

// CountDocuments counts documents matching filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, emptyFilter(filter))
	if err != nil {
		return 0, s.dbError("CountDocuments", err)
	}
	return count, nil
}

// DocumentExists reports whether at least one document matches filter.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, emptyFilter(filter), options.Count().SetLimit(1))
	if err != nil {
		return false, s.dbError("DocumentExists", err)
	}
	return count > 0, nil
}

// Aggregate runs pipeline and decodes every result into out (a pointer to a slice).
func (s *BaseServiceMongoImpl[T]) Aggregate(ctx context.Context, pipeline interface{}, out interface{}) error {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return s.dbError("Aggregate", err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return s.dbError("Aggregate", err)
	}
	return nil
}
