package discount

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode          = errors.New("invalid discount code format")
	ErrInvalidType          = errors.New("discount type must be percentage or fixed")
	ErrInvalidPercentage    = errors.New("percentage discount must be between 1 and 100")
	ErrInvalidFixedAmount   = errors.New("fixed discount must be positive")
	ErrInvalidMinOrder      = errors.New("minimum order amount cannot be negative")
	ErrInvalidMaxDiscount   = errors.New("maximum discount amount cannot be negative")
	ErrInvalidValidityRange = errors.New("valid_from must not be after valid_until")
	ErrInvalidUsageLimit    = errors.New("usage limit cannot be negative")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,30}$`)

type Code string

// NewCode normalizes user input (trim, upper-case) before checking the format.
func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

func NewType(s string) (Type, error) {
	switch Type(s) {
	case TypePercentage, TypeFixed:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string {
	return string(t)
}
