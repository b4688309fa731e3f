package member

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance used by every field constructor.
var validate = validator.New()

// Validator tags applied by the field constructors.
const (
	nameRules          = "required,max=100"
	studentNumberRules = "required,len=9,alphanum"
	emailRules         = "required,max=254,email"
	phoneRules         = "required,len=8,number"
	dietaryRules       = "required,max=50"
	roleRules          = "required,max=50"
	tagRules           = "required,max=30"
)

// FieldError reports a value rejected by a field constructor.
type FieldError struct {
	Field   string // Human-readable field name ("name", "email", ...)
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// checkVar runs the validator rules against a single value and converts the
// first failure into a FieldError.
func checkVar(field, value, rules string) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &FieldError{Field: field, Value: value, Message: ruleMessage(errs[0])}
	}
	return &FieldError{Field: field, Value: value, Message: err.Error()}
}

// ruleMessage returns a human-readable message for a validator failure.
func ruleMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	case "alphanum":
		return "must contain only letters and digits"
	case "number":
		return "must contain only digits"
	default:
		return fmt.Sprintf("failed validation: %s", e.Tag())
	}
}
