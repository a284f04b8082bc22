package sequence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

// MongoIDLister reads the identifier field of every document matching Filter.
type MongoIDLister struct {
	Collection *mongo.Collection
	Field      string
	Filter     bson.M
}

func (l *MongoIDLister) ListIDs(ctx context.Context) ([]string, error) {
	filter := bson.M{l.Field: bson.M{"$exists": true}}
	for k, v := range l.Filter {
		filter[k] = v
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0, l.Field: 1}).
		SetSort(bson.D{{Key: l.Field, Value: 1}})

	cursor, err := l.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if id, ok := doc[l.Field].(string); ok {
			ids = append(ids, id)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return ids, nil
}

// counterDoc is one document of the counters collection.
type counterDoc struct {
	ID            string `bson:"_id"`
	SequenceValue int    `bson:"sequenceValue"`
}

// MongoCounterStore keeps counters as {_id: <name>, sequenceValue: <n>} documents.
type MongoCounterStore struct {
	Collection *mongo.Collection
}

func (s *MongoCounterStore) Increment(ctx context.Context, name string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"sequenceValue": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return doc.SequenceValue, nil
}

func (s *MongoCounterStore) Current(ctx context.Context, name string) (int, error) {
	var doc counterDoc
	err := s.Collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return doc.SequenceValue, nil
}

// Raise sets the counter to at least value. It never lowers a counter.
func (s *MongoCounterStore) Raise(ctx context.Context, name string, value int) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := s.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"sequenceValue": value}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return doc.SequenceValue, nil
}

// CounterRaiser is a CounterStore that can be raised to a floor value.
type CounterRaiser interface {
	CounterStore
	Raise(ctx context.Context, name string, value int) (int, error)
}

// SeedCounter raises the counter behind a to the highest number already issued in ids, so
// that counters created after a data import never hand out a taken identifier.
func SeedCounter(ctx context.Context, a *CounterAllocator, store CounterRaiser, ids IDLister) (int, error) {
	existing, err := ids.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, id := range existing {
		n, err := Parse(a.Prefix, id)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return store.Raise(ctx, a.sequence(), highest)
}
