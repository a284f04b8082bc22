// Package models - business leads and their status lifecycle.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business statuses
const (
	StatusFreshData            = "Fresh Data"
	StatusAppointmentGenerated = "Appointment Generated"
	StatusFollowup             = "Followup"
	StatusNotInterested        = "Not Interested"
	StatusInvalidData          = "Invalid Data"
	StatusNotResponding        = "Not Responding"
	StatusDealClosed           = "Deal Closed"
	StatusVisited              = "Visited"
)

// Statuses lists every status in workflow order.
var Statuses = []string{
	StatusFreshData,
	StatusAppointmentGenerated,
	StatusFollowup,
	StatusNotInterested,
	StatusInvalidData,
	StatusNotResponding,
	StatusDealClosed,
	StatusVisited,
}

// DualStatuses are matched against visit_result.reason as well as status. Every filter and
// count goes through StatusPredicate.
var DualStatuses = map[string]bool{
	StatusFollowup:      true,
	StatusNotInterested: true,
	StatusDealClosed:    true,
	StatusVisited:       true,
}

// Field paths
const (
	FieldStatus       = "status"
	FieldVisitReason  = "visit_result.reason"
	FieldVisitDate    = "visit_result.visitDate"
	FieldBusinessID   = "businessId"
	FieldMobileNumber = "mobileNumber"
)

// IsStatus reports whether s is a known status.
func IsStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsDualStatus reports whether s is also matched on the visit outcome.
func IsDualStatus(s string) bool {
	return DualStatuses[s]
}

// StatusPredicate returns the filter selecting businesses counted under s.
func StatusPredicate(s string) bson.M {
	if IsDualStatus(s) {
		return bson.M{"$or": bson.A{
			bson.M{FieldStatus: s},
			bson.M{FieldVisitReason: s},
		}}
	}
	return bson.M{FieldStatus: s}
}

// VisitResult is the outcome a BDE records after visiting the business.
type VisitResult struct {
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	VisitDate *time.Time         `json:"visitDate,omitempty" bson:"visitDate,omitempty"`
	Remarks   string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	UpdatedBy primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Business is one lead. City, Category, Source and the user references hold ObjectIDs.
type Business struct {
	ID                primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	BusinessID        string             `json:"businessId" bson:"businessId" index:"unique"`
	BusinessName      string             `json:"businessName" bson:"businessName" index:"text"`
	ContactPersonName string             `json:"contactPersonName,omitempty" bson:"contactPersonName,omitempty"`
	MobileNumber      string             `json:"mobileNumber" bson:"mobileNumber" index:"unique"`
	Email             string             `json:"email,omitempty" bson:"email,omitempty"`
	Address           string             `json:"address,omitempty" bson:"address,omitempty"`
	City              primitive.ObjectID `json:"city,omitempty" bson:"city,omitempty" index:"single:1"`
	Category          primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty" index:"single:1"`
	Source            primitive.ObjectID `json:"source,omitempty" bson:"source,omitempty" index:"single:1"`
	Status            string             `json:"status" bson:"status" index:"compound:status_created,order:1"`
	FollowUpDate      *time.Time         `json:"followUpDate,omitempty" bson:"followUpDate,omitempty" index:"single:1"`
	AppointmentDate   *time.Time         `json:"appointmentDate,omitempty" bson:"appointmentDate,omitempty" index:"single:1"`
	VisitResult       *VisitResult       `json:"visit_result,omitempty" bson:"visit_result,omitempty"`
	Remarks           string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	AssignedTo        primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty" index:"single:1"`
	LeadBy            primitive.ObjectID `json:"leadBy,omitempty" bson:"leadBy,omitempty" index:"single:1"`
	CreatedBy         primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty" index:"single:1"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt" index:"compound:status_created,order:-1"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Ref is a populated reference: a city, category, source or user reduced to display fields.
type Ref struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Code         string             `json:"code,omitempty" bson:"code,omitempty"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	Role         string             `json:"role,omitempty" bson:"role,omitempty"`
	MobileNumber string             `json:"mobileNumber,omitempty" bson:"mobileNumber,omitempty"`
}

// BusinessView is a Business with its references populated.
type BusinessView struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id"`
	BusinessID        string             `json:"businessId" bson:"businessId"`
	BusinessName      string             `json:"businessName" bson:"businessName"`
	ContactPersonName string             `json:"contactPersonName,omitempty" bson:"contactPersonName,omitempty"`
	MobileNumber      string             `json:"mobileNumber" bson:"mobileNumber"`
	Email             string             `json:"email,omitempty" bson:"email,omitempty"`
	Address           string             `json:"address,omitempty" bson:"address,omitempty"`
	City              *Ref               `json:"city,omitempty" bson:"city,omitempty"`
	Category          *Ref               `json:"category,omitempty" bson:"category,omitempty"`
	Source            *Ref               `json:"source,omitempty" bson:"source,omitempty"`
	Status            string             `json:"status" bson:"status"`
	FollowUpDate      *time.Time         `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	AppointmentDate   *time.Time         `json:"appointmentDate,omitempty" bson:"appointmentDate,omitempty"`
	VisitResult       *VisitResult       `json:"visit_result,omitempty" bson:"visit_result,omitempty"`
	Remarks           string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	AssignedTo        *Ref               `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	LeadBy            *Ref               `json:"leadBy,omitempty" bson:"leadBy,omitempty"`
	CreatedBy         *Ref               `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// StatusCount is the statusCount block of a listing.
type StatusCount struct {
	GrandTotalBusinesses int64 `json:"grandTotalBusinesses"`
	FollowupCount        int64 `json:"FollowupCount"`
	AppointmentCount     int64 `json:"appointmentCount"`
	VisitCount           int64 `json:"visitCount"`
	DealCloseCount       int64 `json:"dealCloseCount"`
}

// ListResult is the listing response.
type ListResult struct {
	Businesses  []BusinessView `json:"businesses"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int64          `json:"currentPage"`
	TotalCount  int64          `json:"totalCount"`
	StatusCount StatusCount    `json:"statusCount"`
}

// Bucket is one group of an analytics breakdown.
type Bucket struct {
	Key   string `json:"key" bson:"key"`
	Count int64  `json:"count" bson:"count"`
}

// Analytics breaks the filtered businesses down by status and lead source.
type Analytics struct {
	Total       int64       `json:"total"`
	ByStatus    []Bucket    `json:"byStatus"`
	BySource    []Bucket    `json:"bySource"`
	StatusCount StatusCount `json:"statusCount"`
}
