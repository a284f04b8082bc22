// Package models - website content managed from the CRM: blogs, job posts, job
// applications and WhatsApp message templates.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/media"
)

// Blog is an article published on the website.
type Blog struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	BlogID      string             `json:"blogId" bson:"blogId" index:"unique"`
	Title       string             `json:"title" bson:"title" index:"text"`
	Slug        string             `json:"slug" bson:"slug" index:"unique"`
	Excerpt     string             `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Content     string             `json:"content" bson:"content"`
	Tags        []string           `json:"tags,omitempty" bson:"tags,omitempty" index:"single:1"`
	Image       *media.Asset       `json:"image,omitempty" bson:"image,omitempty"`
	Published   bool               `json:"published" bson:"published" index:"single:1"`
	PublishedAt *time.Time         `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	Author      primitive.ObjectID `json:"author,omitempty" bson:"author,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// JobPost is an opening listed on the careers page.
type JobPost struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	JobPostID   string             `json:"jobpostId" bson:"jobpostId" index:"unique"`
	Title       string             `json:"title" bson:"title" index:"text"`
	Location    string             `json:"location,omitempty" bson:"location,omitempty"`
	Experience  string             `json:"experience,omitempty" bson:"experience,omitempty"`
	Salary      string             `json:"salary,omitempty" bson:"salary,omitempty"`
	Description string             `json:"description" bson:"description"`
	Skills      []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	Active      bool               `json:"active" bson:"active" index:"single:1"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Application statuses
const (
	ApplicationReceived    = "received"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
)

// ApplicationStatuses lists every application status.
var ApplicationStatuses = []string{ApplicationReceived, ApplicationShortlisted, ApplicationRejected}

// Application is a job application submitted through the careers page.
type Application struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ApplicationID string             `json:"applicationId" bson:"applicationId" index:"unique"`
	JobPost       primitive.ObjectID `json:"jobPost" bson:"jobPost" index:"single:1"`
	JobTitle      string             `json:"jobTitle" bson:"jobTitle"`
	Name          string             `json:"name" bson:"name"`
	MobileNumber  string             `json:"mobileNumber" bson:"mobileNumber"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	CoverLetter   string             `json:"coverLetter,omitempty" bson:"coverLetter,omitempty"`
	Resume        *media.Asset       `json:"resume,omitempty" bson:"resume,omitempty"`
	Status        string             `json:"status" bson:"status" index:"single:1"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// WhatsAppTemplate is a canned message (with optional media) telecallers send to leads.
type WhatsAppTemplate struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	WhatsAppID string             `json:"whatsappId" bson:"whatsappId" index:"unique"`
	Title      string             `json:"title" bson:"title"`
	Message    string             `json:"message" bson:"message"`
	Category   primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty" index:"single:1"`
	Media      *media.Asset       `json:"media,omitempty" bson:"media,omitempty"`
	Active     bool               `json:"active" bson:"active"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
