package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"swiftAid/pkg/e"
	"swiftAid/pkg/validator"
)

const maxBodyBytes = 1 << 20

// Bind decodes exactly one JSON object into dst and validates it.
func Bind(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return e.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return e.NewValidationError("body", "unexpected data after JSON object")
	}
	return validator.ValidateStruct(dst)
}
