// Package shortcode generates the random identifiers that stand in for long URLs.
package shortcode

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of characters a short code is drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// DefaultLength is the number of characters in a short code.
	DefaultLength = 6
)

// Generator produces random short codes of a fixed length.
// It keeps no state between calls, so collisions are left to the caller.
type Generator struct {
	alphabet string
	length   int
}

// NewGenerator creates a generator for codes of the given length.
// A non-positive length falls back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}

	return &Generator{
		alphabet: Alphabet,
		length:   length,
	}
}

// Generate returns a new code with every character picked uniformly from the alphabet.
func (g *Generator) Generate() (string, error) {
	const op = "shortcode.Generator.Generate"

	code, err := gonanoid.Generate(g.alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

// Length reports the number of characters in generated codes.
func (g *Generator) Length() int {
	return g.length
}
