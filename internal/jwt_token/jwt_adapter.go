package jwttoken

import (
	"diddht/internal/platform/middleware"
	strutil "diddht/pkg/platform/strings"
)

func ToMiddlewareClaims(claims *Claims) *middleware.JWTClaims {
	return &middleware.JWTClaims{
		Subject: claims.Subject,
		Scopes:  strutil.SplitFields(claims.Scope),
		JTI:     claims.ID,
	}
}

// JWTServiceAdapter lets the auth middleware validate tokens without
// importing this package.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
