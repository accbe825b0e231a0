package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("s3cret", 42, "farmacia", "epharma", 15)
	require.NoError(t, err)

	claims, err := Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "farmacia", claims.Username)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "epharma", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("s3cret", 1, "a", "epharma", 15)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("s3cret", 1, "a", "epharma", -1)
	require.NoError(t, err)

	_, err = Parse("s3cret", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", 1, "a", "epharma", 15)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
