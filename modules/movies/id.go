package movies

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a 24-character lowercase hex record id. The shape matches
// the ids the API historically exposed, which clients validate against.
func NewID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf[:])
}

// IsValidID reports whether s has the 24-char lowercase hex id shape.
func IsValidID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
