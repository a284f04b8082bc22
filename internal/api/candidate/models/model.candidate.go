// Package models - job candidates tracked by HR.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/media"
)

// Candidate statuses
const (
	StatusNew         = "new"
	StatusShortlisted = "shortlisted"
	StatusInterviewed = "interviewed"
	StatusHired       = "hired"
	StatusRejected    = "rejected"
)

// Statuses lists every candidate status.
var Statuses = []string{StatusNew, StatusShortlisted, StatusInterviewed, StatusHired, StatusRejected}

// Candidate is a job applicant sourced by HR.
type Candidate struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CandidateID  string             `json:"candidateId" bson:"candidateId" index:"unique"`
	Name         string             `json:"name" bson:"name"`
	MobileNumber string             `json:"mobileNumber" bson:"mobileNumber" index:"unique"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Position     string             `json:"position,omitempty" bson:"position,omitempty"`
	Experience   string             `json:"experience,omitempty" bson:"experience,omitempty"`
	City         primitive.ObjectID `json:"city,omitempty" bson:"city,omitempty"`
	Resume       *media.Asset       `json:"resume,omitempty" bson:"resume,omitempty"`
	Status       string             `json:"status" bson:"status" index:"single:1"`
	Remarks      string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
