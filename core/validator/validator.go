// Package validator checks request payload shape before it reaches a service.
// Every violation surfaces as an invariant error.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"openmusic/core/apperror"

	playground "github.com/go-playground/validator/v10"
)

// MaxCoverSize is the largest accepted album cover upload in bytes.
const MaxCoverSize = 512000

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates a decoded payload against its `validate` tags.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(apperror.KindInvariant, "invalid payload", err)
	}
	return apperror.Invariant(describe(verrs[0]))
}

// DecodeJSON decodes body into dst and validates it.
func DecodeJSON(body io.Reader, dst interface{}) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Invariant("request body is required")
		}
		return apperror.Wrap(apperror.KindInvariant, "invalid request body", err)
	}
	return Struct(dst)
}

// ImageHeaders checks an uploaded cover's content type and size.
func ImageHeaders(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperror.Invariant(fmt.Sprintf("\"cover\" must be an image, got %q", contentType))
	}
	if size > MaxCoverSize {
		return apperror.Invariant(fmt.Sprintf("\"cover\" must not exceed %d bytes", MaxCoverSize))
	}
	return nil
}

func describe(fe playground.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gte", "min":
		return field + " must be greater than or equal to " + fe.Param()
	case "lte", "max":
		return field + " must be less than or equal to " + fe.Param()
	default:
		return field + " is invalid"
	}
}
