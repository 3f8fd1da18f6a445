package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/coursecatalog/internal/app/models/dto"
)

// Report JSON field names instead of Go struct field names
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// BindingErrorResponse converts a gin binding error into field-level details
func BindingErrorResponse(err error) *dto.ValidationErrorResponse {
	resp := dto.NewValidationErrors()

	var validationErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			resp.AddError(formatValidationError(fe), validationErrorType(fe), fe.Field())
		}
	case errors.As(err, &typeErr):
		resp.AddError("value is not a valid "+typeErr.Value+" for "+typeErr.Type.String(), "type_error", typeErr.Field)
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		resp.AddError("request body is not valid JSON", "value_error.jsondecode")
	default:
		resp.AddError("invalid request body", "value_error")
	}

	return resp
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

func validationErrorType(e validator.FieldError) string {
	if e.Tag() == "required" {
		return "value_error.missing"
	}
	return "value_error." + e.Tag()
}
