package validator

import (
	"errors"
	"strings"
)

// ErrInvalidTarget is returned when ValidateStruct is not given a struct pointer.
var ErrInvalidTarget = errors.New("validator: must pass a pointer to struct")

// ValidationError describes one failed rule.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed rule of a validation run.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends err.
func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

func (e ValidationErrors) IsEmpty() bool { return len(e) == 0 }

// Has reports whether field failed any rule.
func (e ValidationErrors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Get returns the first message recorded for field.
func (e ValidationErrors) Get(field string) string {
	for _, v := range e {
		if v.Field == field {
			return v.Message
		}
	}
	return ""
}

// ExtractValidationErrors returns the validation errors wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsValidationError reports whether err carries validation errors.
func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
