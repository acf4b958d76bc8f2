// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import "github.com/go-playground/validator/v10"

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with domain-specific rules registered.
func New() *Validator {
	val := &Validator{
		v: validator.New(),
	}

	// VAT rates are bucketed into the three legal Dutch rates.
	_ = val.v.RegisterValidation("vat_bucket", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "21", "9", "0":
			return true
		}
		return false
	})

	return val
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
