package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookcatalog/internal/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateStruct runs validator tags over a request DTO and converts
// failures into boundary error details. Returns nil when the struct is
// valid.
func validateStruct(s interface{}) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []httpx.ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := jsonFieldName(err.Field())

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, httpx.ErrorDetail{
			Field:   field,
			Message: message,
		})
	}
	return details
}

// jsonFieldName maps a Go struct field name to its json key.
func jsonFieldName(field string) string {
	switch field {
	case "PublicationYear":
		return "publication_year"
	default:
		return strings.ToLower(field)
	}
}
