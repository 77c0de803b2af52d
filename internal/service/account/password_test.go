package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := PasswordHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, hasher.Verify(hash, "s3cret"))
	assert.ErrorIs(t, hasher.Verify(hash, "wrong"), ErrPasswordMismatch)
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := PasswordHasher{Cost: bcrypt.MinCost}

	first, err := hasher.Hash("same")
	require.NoError(t, err)
	second, err := hasher.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	err := NewPasswordHasher().Verify("not-a-bcrypt-hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestPasswordHasher_InvalidCost(t *testing.T) {
	_, err := PasswordHasher{Cost: bcrypt.MaxCost + 1}.Hash("x")
	assert.Error(t, err)
}
