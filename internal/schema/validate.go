package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var allowedFits = map[string]struct{}{
	"loose":   {},
	"regular": {},
	"tight":   {},
}

// NewValidator returns a validator that reports JSON field names and knows
// the style_params rule.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("style_params", validateStyleParams)
	return v
}

// validateStyleParams accepts any bag whose "fit", when present, is a known fit.
func validateStyleParams(fl validator.FieldLevel) bool {
	var params map[string]any
	switch v := fl.Field().Interface().(type) {
	case map[string]any:
		params = v
	case *map[string]any:
		if v == nil {
			return true
		}
		params = *v
	default:
		return false
	}
	fit, ok := params["fit"]
	if !ok || fit == nil {
		return true
	}
	s, ok := fit.(string)
	if !ok {
		return false
	}
	_, ok = allowedFits[s]
	return ok
}

// FieldErrors flattens validator errors into field → failed rule.
// It returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[field] = rule
	}
	return out
}
