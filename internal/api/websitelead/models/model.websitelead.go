// Package models - enquiries submitted through the public website.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
	StatusClosed    = "closed"
)

// Statuses lists every website lead status.
var Statuses = []string{StatusNew, StatusContacted, StatusConverted, StatusClosed}

// WebsiteLead is one website enquiry.
type WebsiteLead struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	WebsiteLeadID string             `json:"websiteLeadId" bson:"websiteLeadId" index:"unique"`
	Name          string             `json:"name" bson:"name"`
	MobileNumber  string             `json:"mobileNumber" bson:"mobileNumber" index:"single:1"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Service       string             `json:"service,omitempty" bson:"service,omitempty"`
	Message       string             `json:"message,omitempty" bson:"message,omitempty"`
	Page          string             `json:"page,omitempty" bson:"page,omitempty"`
	Status        string             `json:"status" bson:"status" index:"single:1"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
