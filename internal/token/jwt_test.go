package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	manager := NewJWT("test-secret")

	userID := uuid.New()
	tokenString, err := manager.Generate(userID, "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsedUserID, sessionID, err := manager.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedUserID)
	assert.Equal(t, "sess-1", sessionID)
}

func TestJWT_ParseWrongSecret(t *testing.T) {
	tokenString, err := NewJWT("secret-one").Generate(uuid.New(), "sess-1")
	require.NoError(t, err)

	_, _, err = NewJWT("secret-two").Parse(tokenString)
	assert.Error(t, err)
}

func TestJWT_ParseGarbage(t *testing.T) {
	_, _, err := NewJWT("test-secret").Parse("not.a.token")
	assert.Error(t, err)
}
