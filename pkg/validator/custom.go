package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("phone10", validatePhone10)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

func validatePhone10(fl validator.FieldLevel) bool {
	return len(DigitsOnly(fl.Field().String())) == 10
}

// DigitsOnly strips everything but ASCII digits ("+91 98765-43210" -> "919876543210").
func DigitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
