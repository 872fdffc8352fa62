package rules

import (
	"fmt"

	"github.com/aretw0/schematic/pkg/entity"
)

// Failure kinds reported by the validators of this package, besides type names.
const (
	KindRequired = "required"
	KindEquals   = "equals"
)

// Validator adapts t into an entity validator. A nil value is accepted unless
// required is set; a required field also rejects "", like Required.
func Validator(t Type, required bool) entity.Validator {
	return func(data entity.Data, field, label string) error {
		value := data[field]
		if required && absent(value) {
			return missing(field, label)
		}
		if value == nil {
			return nil
		}
		if err := t.Check(value); err != nil {
			return &entity.StructuredError{
				Kind:    t.Name(),
				Message: fmt.Sprintf("%s %s on %s", field, err, label),
			}
		}
		return nil
	}
}

// Required rejects nil and empty strings.
func Required() entity.Validator {
	return func(data entity.Data, field, label string) error {
		if absent(data[field]) {
			return missing(field, label)
		}
		return nil
	}
}

// Equals accepts only want.
func Equals(want any) entity.Validator {
	return func(data entity.Data, field, label string) error {
		if !looseEqual(data[field], want) {
			return &entity.StructuredError{
				Kind:    KindEquals,
				Message: fmt.Sprintf("%s wrong on %s", field, label),
			}
		}
		return nil
	}
}

// All runs validators in order and reports the first failure.
func All(validators ...entity.Validator) entity.Validator {
	return func(data entity.Data, field, label string) error {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if err := v(data, field, label); err != nil {
				return err
			}
		}
		return nil
	}
}

func absent(value any) bool {
	s, isString := value.(string)
	return value == nil || (isString && s == "")
}

func missing(field, label string) error {
	return &entity.StructuredError{
		Kind:    KindRequired,
		Message: fmt.Sprintf("%s is required on %s", field, label),
	}
}
