package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrInvalidFullName = errors.New("full name must be 1-100 characters")
	ErrInvalidPhone    = errors.New("invalid phone number")
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

const MaxFullNameLength = 100

type Email struct {
	value string
}

// NewEmail lower-cases the address so lookups are case-insensitive.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

func NewFullName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxFullNameLength {
		return "", ErrInvalidFullName
	}
	return s, nil
}

// NewPhone strips spaces, dots and dashes before validating. Empty input yields nil.
func NewPhone(s string) (*string, error) {
	s = strings.NewReplacer(" ", "", "-", "", ".", "").Replace(s)
	if s == "" {
		return nil, nil
	}
	if !phoneRegex.MatchString(s) {
		return nil, ErrInvalidPhone
	}
	return &s, nil
}
