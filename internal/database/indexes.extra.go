package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

// CreateAdditionalIndexes creates indexes that struct tags cannot express (nested fields,
// mixed-direction compounds). Run after CreateIndexes.
func CreateAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	businesses := db.Collection(global.MongoDB_ColNames.Businesses)

	// status buckets match either the primary status or the visit outcome
	if err := createIndex(ctx, businesses, bson.D{{Key: "visit_result.reason", Value: 1}}, "business_visit_reason"); err != nil {
		return err
	}
	if err := createIndex(ctx, businesses, bson.D{{Key: "visit_result.visitDate", Value: 1}}, "business_visit_date"); err != nil {
		return err
	}
	// role-scoped worklists sorted by newest first
	for _, field := range []string{"assignedTo", "leadBy", "createdBy"} {
		keys := bson.D{{Key: field, Value: 1}, {Key: "createdAt", Value: -1}}
		if err := createIndex(ctx, businesses, keys, "business_"+field+"_created"); err != nil {
			return err
		}
	}

	users := db.Collection(global.MongoDB_ColNames.Users)
	return createIndex(ctx, users, bson.D{{Key: "role", Value: 1}, {Key: "userCode", Value: 1}}, "user_role_code")
}

func createIndex(ctx context.Context, col *mongo.Collection, keys bson.D, name string) error {
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	})
	if err != nil && !isIndexExistsError(err) {
		return err
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "IndexOptionsConflict")
}
