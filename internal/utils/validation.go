package utils

import (
	"fmt"
	"go/token"
	"strings"
)

// ValidationError names the setting that failed and why
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "invalid value: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validator checks one value
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a chain from validators
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty rejects the empty string
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{Field: field, Value: value, Message: "cannot be empty"}
		}
		return nil
	}
}

// IsValidGoIdentifier rejects anything go/token would not scan as an identifier
func IsValidGoIdentifier(field string) Validator[string] {
	return func(value string) error {
		if !token.IsIdentifier(value) {
			return ValidationError{Field: field, Value: value, Message: "must be a valid Go identifier"}
		}
		return nil
	}
}

// numberContinuations are leading characters the Go scanner reads as part of
// an integer literal (exponents, imaginary parts, base prefixes, separators)
const numberContinuations = "eEiIpPxXbBoO_"

// UnitSuffix rejects unit names that cannot follow an integer literal as a
// separate identifier token
func UnitSuffix(field string) Validator[string] {
	return func(value string) error {
		if value != "" && strings.ContainsRune(numberContinuations, rune(value[0])) {
			return ValidationError{Field: field, Value: value,
				Message: fmt.Sprintf("%q would be scanned as part of the number", value[:1])}
		}
		return nil
	}
}

// Positive rejects zero and negative numbers
func Positive(field string) Validator[int64] {
	return func(value int64) error {
		if value <= 0 {
			return ValidationError{Field: field, Value: value, Message: "must be greater than zero"}
		}
		return nil
	}
}

// ValidateEach applies itemValidator to every element and reports the index
// of the first failure
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(values []T) error {
		for i, value := range values {
			if err := itemValidator(value); err != nil {
				return ValidationError{Field: fmt.Sprintf("%s[%d]", field, i), Value: value, Message: err.Error()}
			}
		}
		return nil
	}
}
