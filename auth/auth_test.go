package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	tokenString, err := CreateToken("alice")
	require.NoError(t, err)

	claims, err := VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Nickname)
	assert.Equal(t, "local|alice", claims.Subject)
}

func TestVerifyToken_RejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	tokenString, err := CreateToken("alice")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET_KEY", "different-secret")
	_, err = VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestCreateToken_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := CreateToken("alice")
	assert.Error(t, err)
}
