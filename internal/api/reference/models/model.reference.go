// Package models - lookup data businesses refer to: cities, categories and lead sources.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// City is a city businesses are located in.
type City struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CityID    string             `json:"cityId" bson:"cityId" index:"unique"`
	Name      string             `json:"name" bson:"name" index:"unique"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Category is a business category.
type Category struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CategoryID string             `json:"categoryId" bson:"categoryId" index:"unique"`
	Name       string             `json:"name" bson:"name" index:"unique"`
	Active     bool               `json:"active" bson:"active"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Source is the channel a lead came from.
type Source struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	SourceID  string             `json:"sourceId" bson:"sourceId" index:"unique"`
	Name      string             `json:"name" bson:"name" index:"unique"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Option is one entry of a dropdown.
type Option struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Code string             `json:"code" bson:"code"`
	Name string             `json:"name" bson:"name"`
}
