package utility

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

// ValidateStruct runs the shared validator over s and converts failures into a
// VAL_001 error whose details map each invalid field to the failed rule.
func ValidateStruct(s interface{}) error {
	if global.Validate == nil {
		global.InitValidator()
	}
	err := global.Validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewError(common.ErrCodeValidationInput, common.MsgInvalidInput, common.StatusBadRequest, err.Error())
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[lowerFirst(fe.Field())] = rule
	}
	return common.NewError(common.ErrCodeValidationInput, common.MsgInvalidInput, common.StatusBadRequest, details)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
