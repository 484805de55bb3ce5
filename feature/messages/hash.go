package messages

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize prepares message text for hashing. Leading and trailing
// whitespace never makes a message distinct.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// HashText returns the hex encoded SHA-256 of normalized message text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
