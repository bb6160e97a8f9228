package queries

import (
	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/pkg/errs"
	"happyhour-console/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidAccessToken = errs.New("invalid access token")

// TokenValidator is what the auth middleware consumes: it accepts only
// access tokens, never refresh or pending ones.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidAccessToken)
	}

	if claims.TokenType != jwt.TokenTypeAccess {
		return uuid.Nil, "", ErrInvalidAccessToken
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidAccessToken)
	}

	return claims.UserID, role, nil
}
