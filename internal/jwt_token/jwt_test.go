package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "diddht/pkg/domain-errors"
)

var jwtService = NewJWTService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)
var expiresIn = time.Hour

func Test_GenerateAccessToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken("wallet-service", "didManagerCreate didManagerGet", expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "wallet-service", claims.Subject)
	assert.Equal(t, "didManagerCreate didManagerGet", claims.Scope)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Equal(t, "invalid token", err.Error())
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken("wallet-service", "", -time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, "token has expired", err.Error())
}

func Test_ValidateToken_WrongAudience(t *testing.T) {
	other := NewJWTService("test-signing-key", "test-issuer", "other-audience")
	token, err := other.GenerateAccessToken("wallet-service", "", expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("another-key", "test-issuer", "test-audience")
	token, err := other.GenerateAccessToken("wallet-service", "", expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.Equal(t, "invalid token", err.Error())
}

func Test_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "wallet-service",
			Issuer:    "test-issuer",
			Audience:  []string{"test-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_RequiresSubject(t *testing.T) {
	token, err := jwtService.GenerateAccessToken("", "", expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.Equal(t, "token has no subject", err.Error())
}

func Test_Adapter(t *testing.T) {
	token, err := jwtService.GenerateAccessToken("wallet-service", "didManagerCreate  keyManagerGet", expiresIn)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(jwtService).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "wallet-service", claims.Subject)
	assert.Equal(t, []string{"didManagerCreate", "keyManagerGet"}, claims.Scopes)
	assert.NotEmpty(t, claims.JTI)
}
