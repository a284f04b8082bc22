// Package models - clients: businesses that closed a deal.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a converted customer. ClientID comes from a monotonic counter and is never
// reused.
type Client struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ClientID     string             `json:"clientId" bson:"clientId" index:"unique"`
	Name         string             `json:"name" bson:"name" index:"text"`
	MobileNumber string             `json:"mobileNumber" bson:"mobileNumber" index:"unique"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`
	Business     primitive.ObjectID `json:"business,omitempty" bson:"business,omitempty" index:"single:1"`
	Services     []string           `json:"services,omitempty" bson:"services,omitempty"`
	DealAmount   float64            `json:"dealAmount" bson:"dealAmount"`
	Remarks      string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedBy    primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
