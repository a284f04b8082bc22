package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

func TestIsRole(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, IsRole(r), r)
	}
	assert.False(t, IsRole(""))
	assert.False(t, IsRole("Admin"))
	assert.False(t, IsRole("manager"))
}

func TestAllocatorEntity(t *testing.T) {
	cases := map[string]string{
		RoleAdmin:           sequence.EntityAdmin,
		RoleEmployee:        sequence.EntityEmployee,
		RoleBDE:             sequence.EntityBDE,
		RoleTelecaller:      sequence.EntityTelecaller,
		RoleDigitalMarketer: sequence.EntityDigitalMarketer,
		"unknown":           "",
	}
	for role, want := range cases {
		assert.Equal(t, want, AllocatorEntity(role), role)
	}
}
