package shortcode

import (
	"crypto/rand"
	"fmt"
)

// Alphabet is the 62-symbol set short codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the code length used when callers have no preference.
const DefaultLength = 6

// Generator produces random short codes. It makes no uniqueness guarantee;
// the store's unique constraint on short_code is the arbiter of collisions.
type Generator interface {
	Generate(length int) (string, error)
}

type cryptoGenerator struct{}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator() Generator {
	return cryptoGenerator{}
}

// Generate returns a string of exactly length characters, one random byte
// per character mapped into Alphabet by modulo.
func (cryptoGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, length)
	for i, b := range bytes {
		code[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(code), nil
}
