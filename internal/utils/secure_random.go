package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomHex reads n random bytes and returns them hex encoded (2n characters).
// Used for placeholder passwords and username disambiguation suffixes.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("byte count must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
