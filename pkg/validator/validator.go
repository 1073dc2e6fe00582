package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"swiftAid/pkg/e"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	RegisterCustomValidations(validate)
}

// ValidateStruct returns nil or an *e.ValidationError keyed by JSON field path.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &e.ValidationError{Fields: map[string]string{"body": err.Error()}}
	}
	out := &e.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe.Namespace())] = reason(fe)
	}
	return out
}

// fieldPath drops the root struct name: "CreateIncidentRequest.caller.phone" -> "caller.phone".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "phone10":
		return "must contain exactly 10 digits"
	case "lat":
		return "must be between -90 and 90"
	case "lng":
		return "must be between -180 and 180"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "ne":
		return "must not be " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
