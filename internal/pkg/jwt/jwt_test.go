package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("account-1", "NAF/12345", "sgt@example.com", "MEMBER", "secret", 60)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.AccountID)
	assert.Equal(t, "NAF/12345", claims.ServiceNumber)
	assert.Equal(t, "sgt@example.com", claims.Email)
	assert.Equal(t, "MEMBER", claims.Role)
	assert.Equal(t, "cooplink-backend", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("account-1", "", "sgt@example.com", "MEMBER", "secret", 60)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "other-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("account-1", "", "sgt@example.com", "MEMBER", "secret", -1)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
