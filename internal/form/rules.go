// Package form implements the comment form's field validation pipeline.
package form

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches parsed tags and is safe for concurrent use.
var validate = validator.New()

// Rule is a single named check on a field value.
type Rule struct {
	Name    string
	Message string
	Check   func(value string) bool
}

// tagRule builds a Rule backed by a validator tag.
func tagRule(name, tag, message string) Rule {
	return Rule{
		Name:    name,
		Message: message,
		Check: func(value string) bool {
			return validate.Var(value, tag) == nil
		},
	}
}

// Required fails when the value is empty.
func Required() Rule {
	return tagRule("required", "required", "Required")
}

// MinLength passes on an empty value and otherwise requires at least n characters.
func MinLength(n int) Rule {
	return tagRule("minLength",
		fmt.Sprintf("omitempty,min=%d", n),
		fmt.Sprintf("Must be at least %d characters", n))
}

// MaxLength passes on an empty value and otherwise allows at most n characters.
func MaxLength(n int) Rule {
	return tagRule("maxLength",
		fmt.Sprintf("omitempty,max=%d", n),
		fmt.Sprintf("Must be %d characters or less", n))
}
