package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/optoclinic-api/internal/fiscalcode"
	"github.com/jwalitptl/optoclinic-api/internal/optics"
	"github.com/jwalitptl/optoclinic-api/pkg/httputil"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationConfig represents validation middleware configuration
type ValidationConfig struct {
	CustomValidators    map[string]validator.Func
	CustomErrorMessages map[string]string
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		CustomValidators: map[string]validator.Func{
			"fiscalcode": validateFiscalCode,
			"province":   validateProvince,
			"tabo_axis":  validateTABOAxis,
		},
		CustomErrorMessages: map[string]string{
			"required":         "Field is required",
			"required_without": "Field is required",
			"max":              "Value is too long",
			"gt":               "Value must be positive",
			"gte":              "Value must not be negative",
			"oneof":            "Unsupported value",
			"fiscalcode":       "Invalid fiscal code",
			"province":         "Province must be a two letter code",
			"tabo_axis":        "Axis must be between 0 and 180",
		},
	}
}

func validateFiscalCode(fl validator.FieldLevel) bool {
	return fiscalcode.Validate(fl.Field().String())
}

func validateProvince(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if len(s) != 2 {
		return false
	}
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validateTABOAxis(fl validator.FieldLevel) bool {
	f := fl.Field()
	var v float64
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = float64(f.Int())
	case reflect.Float32, reflect.Float64:
		v = f.Float()
	default:
		return false
	}
	return v >= optics.MinAxis && v <= optics.MaxAxis
}

// RegisterValidators installs the custom tags on gin's validator engine.
func RegisterValidators(config ValidationConfig) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	for tag, fn := range config.CustomValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return nil
}

// Validation turns binding errors recorded with c.Error into a field list.
func Validation(config ValidationConfig) gin.HandlerFunc {
	if err := RegisterValidators(config); err != nil {
		panic(err)
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		var validationErrors []ValidationError
		for _, err := range c.Errors {
			var errs validator.ValidationErrors
			if !errors.As(err.Err, &errs) {
				continue
			}
			for _, e := range errs {
				msg := config.CustomErrorMessages[e.Tag()]
				if msg == "" {
					msg = e.Error()
				}
				validationErrors = append(validationErrors, ValidationError{
					Field:   e.Field(),
					Message: msg,
				})
			}
		}

		if len(validationErrors) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": httputil.Error{
					Code:    http.StatusBadRequest,
					Message: "validation failed",
					TraceID: c.GetString(ContextRequestID),
				},
				"errors": validationErrors,
			})
		}
	}
}
