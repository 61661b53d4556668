package validation

import (
	"reflect"

	"chainsaw-registry/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// registerNullTypes lets the validator look inside null.* and types.Date.
// Invalid or zero values come back as nil so that omitempty applies.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Bool); ok && val.Valid {
			return val.Bool
		}
		return nil
	}, null.Bool{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.Date); ok && !val.IsZero() {
			return val.Time
		}
		return nil
	}, types.Date{})
}
