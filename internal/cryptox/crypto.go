// Package cryptox holds the password hashing used by the optional hashed
// password mode of the credential store.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/bloodconnect/internal/common"
	"golang.org/x/crypto/argon2"
)

// HashPrefix marks an encoded argon2id password record.
const HashPrefix = "argon2id$"

const saltSize = 16

// ErrMalformedHash is returned when an encoded record cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id
// (1 pass, 64 MiB, 4 lanes, 32-byte output).
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns "argon2id$<salt>$<key>" with both parts encoded as
// unpadded base64url. A fresh random salt is used on every call.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey(password, salt)
	return HashPrefix + encode(salt) + "$" + encode(key)
}

// IsHashed reports whether stored looks like a HashPassword record.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, HashPrefix)
}

// VerifyPassword checks candidate against an encoded record in constant time.
func VerifyPassword(encoded string, candidate []byte) (bool, error) {
	salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}
	got := DeriveKey(candidate, salt)
	return subtle.ConstantTimeCompare(key, got) == 1, nil
}

// EqualStrings compares two secrets without leaking the position of the
// first mismatch.
func EqualStrings(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func decodeHash(encoded string) (salt, key []byte, err error) {
	if !IsHashed(encoded) {
		return nil, nil, ErrMalformedHash
	}
	parts := strings.Split(strings.TrimPrefix(encoded, HashPrefix), "$")
	if len(parts) != 2 {
		return nil, nil, ErrMalformedHash
	}
	if salt, err = decode(parts[0]); err != nil {
		return nil, nil, ErrMalformedHash
	}
	if key, err = decode(parts[1]); err != nil {
		return nil, nil, ErrMalformedHash
	}
	return salt, key, nil
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
