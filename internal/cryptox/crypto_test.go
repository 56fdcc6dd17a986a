package cryptox

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	h := HashPassword([]byte("secret1"))
	require.True(t, IsHashed(h))
	assert.Len(t, strings.Split(h, "$"), 3)

	ok, err := VerifyPassword(h, []byte("secret1"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(h, []byte("secret2"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a := HashPassword([]byte("same"))
	b := HashPassword([]byte("same"))
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, in := range []string{
		"plaintext",
		"argon2id$",
		"argon2id$only-one-part",
		"argon2id$!!!$abc",
		"argon2id$abc$***",
	} {
		_, err := VerifyPassword(in, []byte("x"))
		assert.ErrorIs(t, err, ErrMalformedHash, in)
	}
}

func TestEqualStrings(t *testing.T) {
	assert.True(t, EqualStrings("secret1", "secret1"))
	assert.False(t, EqualStrings("secret1", "secret2"))
	assert.False(t, EqualStrings("secret1", "secret"))
	assert.True(t, EqualStrings("", ""))
}
