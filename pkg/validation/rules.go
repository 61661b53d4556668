package validation

import (
	"slices"

	"chainsaw-registry/internal/entities"

	"github.com/go-playground/validator/v10"
)

// registerRules registers the tags used in struct tags.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("fuel_type", isFuelType); err != nil {
		return err
	}
	if err := v.RegisterValidation("use_type", isUseType); err != nil {
		return err
	}
	if err := v.RegisterValidation("doc_type", isDocumentType); err != nil {
		return err
	}
	return nil
}

func isFuelType(fl validator.FieldLevel) bool {
	return slices.Contains(entities.FuelTypes, fl.Field().String())
}

// isUseType accepts current and legacy intended-use values.
func isUseType(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if slices.Contains(entities.UseTypes, s) {
		return true
	}
	_, legacy := entities.LegacyUseTypes[s]
	return legacy
}

func isDocumentType(fl validator.FieldLevel) bool {
	return slices.Contains(entities.DocumentTypes, fl.Field().String())
}
