// Package shortcode generates the short, human-typeable codes that stand in
// for object ids in share links.
package shortcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of characters in a code.
const Length = 6

// Alphabet holds the characters a code is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces candidate codes. Uniqueness is enforced by the store,
// not by the generator.
type Generator interface {
	Generate() (string, error)
}

// Random draws codes uniformly from Alphabet using crypto/rand.
type Random struct{}

// NewRandom returns a Random generator.
func NewRandom() Random {
	return Random{}
}

// Generate returns a fresh code of Length characters.
func (Random) Generate() (string, error) {
	base := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// IsValid reports whether s has the shape of a code.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
