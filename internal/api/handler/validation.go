package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errInvalidBody = domain.NewValidationError("Invalid request body")

// requestValidator checks `validate` tags and reports fields by their JSON
// names, in struct order
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodes the body into req and runs the required-field checks
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errInvalidBody
	}
	return validateRequired(req)
}

func validateRequired(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errInvalidBody
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return domain.NewMissingFieldsError(missing)
}
