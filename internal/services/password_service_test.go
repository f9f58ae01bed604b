package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	for _, password := range []string{"pw", "correct horse battery staple", "ünïcødé"} {
		digest, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, digest)
		assert.True(t, hasher.Verify(password, digest))
		assert.False(t, hasher.Verify(password+"x", digest))
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("pw")
	require.NoError(t, err)
	second, err := hasher.Hash("pw")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("pw", first))
	assert.True(t, hasher.Verify("pw", second))
}

func TestPasswordHasher_Cost(t *testing.T) {
	digest, err := NewPasswordHasher(5).Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
}

func TestPasswordHasher_Invalid(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = hasher.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.ErrorIs(t, err, ErrValidation)

	assert.False(t, hasher.Verify("pw", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("pw", ""))
	assert.False(t, hasher.Verify("", "$2a$04$abc"))
}
