package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/library-records/core"
)

// LoanTypeTag is the struct tag that accepts only known loan types.
const LoanTypeTag = "loantype"

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors is every rejected field of one input.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}

	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Message)
	}

	return fmt.Sprintf("%s: %s", core.ErrInvalidInput, strings.Join(messages, "; "))
}

// Unwrap makes ValidationErrors match core.ErrInvalidInput.
func (v ValidationErrors) Unwrap() error {
	return core.ErrInvalidInput
}

// Validator validates tagged structs.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the loantype tag registered.
// Field names in messages come from the `label` struct tag when present.
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation(LoanTypeTag, validateLoanType); err != nil {
		return nil, fmt.Errorf("registering %q validation: %w", LoanTypeTag, err)
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}

		return field.Name
	})

	return &Validator{validate: v}, nil
}

func validateLoanType(fl validator.FieldLevel) bool {
	field := fl.Field()

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return core.LoanType(field.Int()).IsKnown()
	default:
		return false
	}
}

// Validate checks input against its `validate` tags.
func (v *Validator) Validate(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translateValidationErrors(validationErrs)
	}

	return err
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min", "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max", "lte":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case LoanTypeTag:
			message = fmt.Sprintf("%s must be one of 1, 2, 3, 4", err.Field())
		}

		result = append(result, ValidationError{Field: err.Field(), Message: message})
	}

	return result
}
