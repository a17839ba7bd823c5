// Package validate contains the pure input checks run before any request is
// built. Nothing in this package performs I/O.
package validate

import "fmt"

// Kind classifies a validation failure.
type Kind int

const (
	MissingField Kind = iota + 1
	WrongType
	EmptyString
	TooFew
	TooMany
	TooLong
	ForbiddenCharacter
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case WrongType:
		return "WrongType"
	case EmptyString:
		return "EmptyString"
	case TooFew:
		return "TooFew"
	case TooMany:
		return "TooMany"
	case TooLong:
		return "TooLong"
	case ForbiddenCharacter:
		return "ForbiddenCharacter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error describes the first rule an input broke.
type Error struct {
	Kind Kind
	// Field is the argument or config key that failed, e.g. "interests".
	Field string
	// Noun names one element of a list field, e.g. "interest". Empty for scalars.
	Noun string
	// Value is the offending element or scalar.
	Value string
	// Index is the element position, or -1 when the failure is not per element.
	Index int
	// Limit is the bound that was exceeded, for TooMany and TooLong.
	Limit int
	// Count is the observed list length, for TooMany.
	Count int
	// Expected describes the required shape, for WrongType, or the allowed
	// characters of a scalar, for ForbiddenCharacter.
	Expected string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("required '%s' is missing", e.Field)
	case WrongType:
		return fmt.Sprintf("'%s' must be %s", e.Field, e.Expected)
	case EmptyString:
		if e.Index >= 0 {
			return fmt.Sprintf("%s at index %d cannot be the empty string", e.Noun, e.Index)
		}
		return fmt.Sprintf("'%s' cannot be the empty string", e.Field)
	case TooFew:
		return fmt.Sprintf("publishes must target at least one %s to get delivered", e.Noun)
	case TooMany:
		return fmt.Sprintf("number of %s (%d) exceeds maximum of %d", e.Field, e.Count, e.Limit)
	case TooLong:
		if e.Noun != "" {
			return fmt.Sprintf("%s %q is longer than the maximum of %d characters", e.Noun, e.Value, e.Limit)
		}
		return fmt.Sprintf("'%s' is longer than the maximum of %d characters", e.Field, e.Limit)
	case ForbiddenCharacter:
		if e.Noun == "" {
			return fmt.Sprintf("'%s' %q contains a forbidden character; allowed characters are %s", e.Field, e.Value, e.Expected)
		}
		return fmt.Sprintf("%s %q contains a forbidden character; allowed characters are ASCII upper/lower-case letters, numbers or one of %s",
			e.Noun, e.Value, interestPunctuation)
	default:
		return fmt.Sprintf("invalid '%s'", e.Field)
	}
}
