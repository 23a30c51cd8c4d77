package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correcthorse", hash)

	t.Run("MatchingPassword", func(t *testing.T) {
		assert.True(t, CheckPassword(hash, "correcthorse"))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		assert.False(t, CheckPassword(hash, "batterystaple"))
	})

	t.Run("NotAHash", func(t *testing.T) {
		assert.False(t, CheckPassword("plaintext", "plaintext"))
	})
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("correcthorse")
	require.NoError(t, err)
	second, err := HashPassword("correcthorse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
