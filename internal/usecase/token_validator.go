package usecase

import (
	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/jwt"
)

// TokenValidator turns an access token into the caller's session for middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (auth.Session, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// Refresh tokens are rejected so they cannot be replayed as bearer credentials.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (auth.Session, error) {
	claims, err := t.jwtService.ValidateTokenOfType(tokenString, jwt.TokenTypeAccess)
	if err != nil {
		return auth.Session{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return auth.Session{}, err
	}

	return auth.NewSession(claims.UserID, role), nil
}
