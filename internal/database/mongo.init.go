package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// EnsureCollections creates every collection in names that does not exist yet.
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	log := logger.WithModule("database")
	for _, name := range names {
		if name == "" || have[name] {
			continue
		}
		log.Infof("Collection %s does not exist, creating", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	log.Infof("Collections ensured in database %s", db.Name())
	return nil
}

// indexSpec is one index derived from a model's `index` struct tags.
type indexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseIndexTag splits `single:1,unique,sparse;compound:name` into option maps.
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			sub = strings.TrimSpace(sub)
			if sub == "" {
				continue
			}
			if k, v, ok := strings.Cut(sub, ":"); ok {
				entry[k] = v
			} else {
				entry[sub] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

func parseOrder(cfg map[string]string) int {
	if cfg["order"] == "-1" || cfg["single"] == "-1" {
		return -1
	}
	return 1
}

// indexSpecs derives the indexes declared by model. Supported tag options:
//
//	single[:1|-1]   single field index
//	unique[,sparse] unique index
//	text            text index
//	ttl:<seconds>   TTL index
//	compound:<name>[,order:-1] member of a compound index; a name containing
//	                "_unique" makes it unique
func indexSpecs(model interface{}) ([]indexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []indexSpec
	compound := map[string]*indexSpec{}
	var compoundOrder []string

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField, _, _ := strings.Cut(field.Tag.Get("bson"), ",")
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			_, sparse := cfg["sparse"]

			if _, ok := cfg["text"]; ok {
				name := bsonField + "_text"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: "text"}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["single"]; ok {
				name := bsonField + "_single"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: parseOrder(cfg)}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("invalid ttl on %s: %w", bsonField, err)
				}
				name := bsonField + "_ttl"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
			}
			if group, ok := cfg["compound"]; ok {
				spec, exists := compound[group]
				if !exists {
					spec = &indexSpec{Name: group, Options: options.Index().SetName(group)}
					if strings.Contains(group, "_unique") {
						spec.Options.SetUnique(true)
					}
					compound[group] = spec
					compoundOrder = append(compoundOrder, group)
				}
				if sparse {
					spec.Options.SetSparse(true)
				}
				spec.Keys = append(spec.Keys, bson.E{Key: bsonField, Value: parseOrder(cfg)})
			}
		}
	}

	sort.Strings(compoundOrder)
	for _, group := range compoundOrder {
		specs = append(specs, *compound[group])
	}
	return specs, nil
}

// sameIndex reports whether an existing index (as listed by the server) matches spec.
func sameIndex(existing bson.M, spec indexSpec) bool {
	keys, ok := existing["key"].(bson.M)
	if !ok || len(keys) != len(spec.Keys) {
		return false
	}
	for _, k := range spec.Keys {
		current, ok := keys[k.Key]
		if !ok {
			return false
		}
		want, isInt := k.Value.(int)
		if !isInt {
			if current != k.Value {
				return false
			}
			continue
		}
		switch v := current.(type) {
		case int32:
			if int(v) != want {
				return false
			}
		case int64:
			if int(v) != want {
				return false
			}
		case float64:
			if int(v) != want {
				return false
			}
		default:
			return false
		}
	}

	unique, _ := existing["unique"].(bool)
	wantUnique := spec.Options.Unique != nil && *spec.Options.Unique
	if unique != wantUnique {
		return false
	}
	sparse, _ := existing["sparse"].(bool)
	wantSparse := spec.Options.Sparse != nil && *spec.Options.Sparse
	if sparse != wantSparse {
		return false
	}
	if spec.Options.ExpireAfterSeconds != nil {
		ttl, ok := existing["expireAfterSeconds"].(int32)
		if !ok || ttl != *spec.Options.ExpireAfterSeconds {
			return false
		}
	}
	return true
}

// CreateIndexes creates the indexes declared on model, replacing same-named indexes whose
// definition changed.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	log := logger.WithModule("database").WithField("collection", collection.Name())

	specs, err := indexSpecs(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("cannot list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("cannot decode index info: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = info
		}
	}

	for _, spec := range specs {
		if current, ok := existing[spec.Name]; ok {
			if sameIndex(current, spec) {
				continue
			}
			if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
				return fmt.Errorf("cannot drop index %s: %w", spec.Name, err)
			}
			log.Infof("Dropped outdated index %s", spec.Name)
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil {
			return fmt.Errorf("cannot create index %s: %w", spec.Name, err)
		}
		log.Infof("Created index %s", spec.Name)
	}
	return nil
}
