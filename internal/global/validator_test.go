package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validatorProbe struct {
	Name   string `validate:"no_xss"`
	Mobile string `validate:"mobile"`
	City   string `validate:"objectid"`
}

func TestInitValidator_CustomTags(t *testing.T) {
	InitValidator()

	ok := validatorProbe{Name: "Reboot AI", Mobile: "+919876543210", City: "64b7f0c2a1b2c3d4e5f60718"}
	assert.NoError(t, Validate.Struct(ok))

	assert.NoError(t, Validate.Struct(validatorProbe{}))

	assert.Error(t, Validate.Struct(validatorProbe{Name: "<script>alert(1)</script>"}))
	assert.Error(t, Validate.Struct(validatorProbe{Mobile: "12345"}))
	assert.Error(t, Validate.Struct(validatorProbe{City: "kolkata"}))
}
