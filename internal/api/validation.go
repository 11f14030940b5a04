package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is one failed field check, shaped for the error
// response body.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct runs the `validate` tag rules on a request struct and
// returns the failures. Used by handlers for checks that go beyond
// gin's `binding` tags.
func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors []ValidationError
	for _, fe := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}

	return errors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

// RespondWithValidationErrors sends validation errors as JSON response
func RespondWithValidationErrors(c *gin.Context, errors []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": errors,
	})
}
