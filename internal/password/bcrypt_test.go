package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("x")
	require.NoError(t, err)
	assert.NotEqual(t, "x", hash)

	ok, err := h.Verify("x", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("y", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(100).cost)
}

func TestHasher_TooLong(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestHasher_MalformedHash(t *testing.T) {
	ok, err := NewHasher(bcrypt.MinCost).Verify("x", "plaintext-from-old-rows")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHasher_VerifyRejectsSuffixPastLimit(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	pw := strings.Repeat("p", MaxBytes)

	hash, err := h.Hash(pw)
	require.NoError(t, err)

	ok, err := h.Verify(pw, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(pw+"EXTRA", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
