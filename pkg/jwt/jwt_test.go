package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateAdminToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}
