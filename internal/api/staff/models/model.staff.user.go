// Package models - staff accounts of every role.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// Roles
const (
	RoleAdmin           = "admin"
	RoleEmployee        = "employee"
	RoleBDE             = "bde"
	RoleTelecaller      = "telecaller"
	RoleDigitalMarketer = "digitalmarketer"
)

// Roles lists every role.
var Roles = []string{RoleAdmin, RoleEmployee, RoleBDE, RoleTelecaller, RoleDigitalMarketer}

// IsRole reports whether r is a known role.
func IsRole(r string) bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// AllocatorEntity returns the identifier allocator of role.
func AllocatorEntity(role string) string {
	switch role {
	case RoleAdmin:
		return sequence.EntityAdmin
	case RoleEmployee:
		return sequence.EntityEmployee
	case RoleBDE:
		return sequence.EntityBDE
	case RoleTelecaller:
		return sequence.EntityTelecaller
	case RoleDigitalMarketer:
		return sequence.EntityDigitalMarketer
	}
	return ""
}

// Target is a sales target assigned to a staff member.
type Target struct {
	Month      string    `json:"month" bson:"month"` // YYYY-MM
	Amount     float64   `json:"amount" bson:"amount"`
	Achieved   float64   `json:"achieved" bson:"achieved"`
	AssignedAt time.Time `json:"assignedAt" bson:"assignedAt"`
}

// User is one staff account. The role decides which allocator issued UserCode.
type User struct {
	ID           primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	UserCode     string               `json:"userCode" bson:"userCode" index:"unique"`
	CodeKey      string               `json:"-" bson:"codeKey,omitempty" index:"unique,sparse"` // UserCode without its time suffix
	Role         string               `json:"role" bson:"role" index:"single:1"`
	Name         string               `json:"name" bson:"name" index:"text"`
	Email        string               `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	MobileNumber string               `json:"mobileNumber" bson:"mobileNumber" index:"unique"`
	Password     string               `json:"-" bson:"password"`
	Designation  string               `json:"designation,omitempty" bson:"designation,omitempty"`
	Address      string               `json:"address,omitempty" bson:"address,omitempty"`
	Cities       []primitive.ObjectID `json:"cities,omitempty" bson:"cities,omitempty"`
	Targets      []Target             `json:"targets" bson:"targets"`
	Active       bool                 `json:"active" bson:"active"`
	LastLoginAt  *time.Time           `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}
