package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps validator for use in Echo and in the services.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New builds the validator with null-type adapters and the registry rules.
func New() *CustomValidator {
	v := validator.New()

	registerNullTypes(v)

	if err := registerRules(v); err != nil {
		panic("failed to register validation rules: " + err.Error())
	}

	return &CustomValidator{validator: v}
}

// FieldMessages flattens validation errors into field -> message pairs.
// Non-validation errors come back as a single "_" entry.
func FieldMessages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return "must be a positive number"
	case "email":
		return "must be a valid email address"
	case "fuel_type":
		return "must be one of GAS, DIESEL, ELECTRIC, OTHER"
	case "use_type":
		return "must be a known intended use"
	case "doc_type":
		return "is not a known document type"
	default:
		return fmt.Sprintf("failed the '%s' check", fe.Tag())
	}
}
