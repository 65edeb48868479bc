package utils // package utils provides helper functions for credentials and random values

import (
	"crypto/rand" // secure random number generation
	"encoding/hex"
	"fmt"
	"math/big"
)

// NewSessionToken returns an opaque session token: 32 bytes of
// cryptographically secure random data, hex encoded (64 characters).
// The token carries no embedded information; the session store maps it
// to the authenticated user.
func NewSessionToken() (string, error) {
	return randomHex(32)
}

// NewResetCode returns a 6 digit numeric password-reset code drawn
// uniformly from 000000 to 999999. Leading zeros are preserved.
func NewResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. If the random number generator
// fails, an error is returned.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
