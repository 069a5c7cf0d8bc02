package echo

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

// RequestValidator plugs go-playground/validator into echo's Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.ErrInvalidRequest(err.Error())
	}

	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Namespace()+" "+messageForTag(fe.Tag(), fe.Param()))
	}
	sort.Strings(fields)
	return apperrors.ErrInvalidRequest(strings.Join(fields, "; "))
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "oneof":
		return "must be one of " + param
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}
