package auth

import (
	"hotel-booking/internal/domain/user"
)

type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}
	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: email, password: password}, nil
}

func (c Credentials) Email() user.Email       { return c.email }
func (c Credentials) Password() user.Password { return c.password }

// Registration is a guest signing up. Self-registered accounts are always customers.
type Registration struct {
	Credentials
	fullName string
	phone    *string
}

func NewRegistration(email, password, fullName, phone string) (Registration, error) {
	creds, err := NewCredentials(email, password)
	if err != nil {
		return Registration{}, err
	}
	name, err := user.NewFullName(fullName)
	if err != nil {
		return Registration{}, err
	}
	normalizedPhone, err := user.NewPhone(phone)
	if err != nil {
		return Registration{}, err
	}
	return Registration{Credentials: creds, fullName: name, phone: normalizedPhone}, nil
}

func (r Registration) FullName() string { return r.fullName }
func (r Registration) Phone() *string   { return r.phone }

// NewUser builds the customer account with an already hashed password.
func (r Registration) NewUser(passwordHash string) *user.User {
	return user.NewUser(r.email, passwordHash, r.fullName, r.phone, user.RoleCustomer)
}
