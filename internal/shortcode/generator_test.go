package shortcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeRe = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{name: "default length", length: 6, want: 6},
		{name: "custom length", length: 9, want: 9},
		{name: "zero falls back to default", length: 0, want: DefaultLength},
		{name: "negative falls back to default", length: -3, want: DefaultLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.length)

			assert.Equal(t, tt.want, g.Length())
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Run("code shape", func(t *testing.T) {
		g := NewGenerator(DefaultLength)

		for i := 0; i < 1000; i++ {
			code, err := g.Generate()

			require.NoError(t, err)
			assert.Regexp(t, codeRe, code)
		}
	})

	t.Run("uses whole alphabet", func(t *testing.T) {
		g := NewGenerator(DefaultLength)
		seen := make(map[rune]bool)

		for i := 0; i < 5000; i++ {
			code, err := g.Generate()
			require.NoError(t, err)

			for _, c := range code {
				seen[c] = true
			}
		}

		// 30000 draws over 62 symbols leave every symbol with a vanishing chance of being missed.
		assert.Len(t, seen, len(Alphabet))
	})

	t.Run("unique statistically", func(t *testing.T) {
		g := NewGenerator(DefaultLength)
		seen := make(map[string]struct{})
		count := 2000

		for i := 0; i < count; i++ {
			code, err := g.Generate()
			require.NoError(t, err)

			seen[code] = struct{}{}
		}

		assert.Len(t, seen, count)
	})

	t.Run("invalid length", func(t *testing.T) {
		g := &Generator{alphabet: Alphabet, length: -1}

		code, err := g.Generate()

		assert.Error(t, err)
		assert.Empty(t, code)
	})
}
