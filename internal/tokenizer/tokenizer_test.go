package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"",
		"राम",
		"राम घर गया",
		"  leading and trailing  ",
		"मिश्रित mixed पाठ with\ttabs\nand newlines",
		"वह घर गया। फिर वापस आया!",
		"एक  दो   तीन",
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Text)
		}
		assert.Equal(t, in, b.String(), "concatenated tokens must reproduce input %q", in)
	}
}

func TestTokenizeOffsets(t *testing.T) {
	in := "राम घर गया"
	tokens := Tokenize(in)
	require.Len(t, tokens, 5) // word space word space word
	for _, tok := range tokens {
		assert.Equal(t, tok.Text, in[tok.StartOffset:tok.EndOffset])
	}
	assert.False(t, tokens[0].IsWhitespace)
	assert.True(t, tokens[1].IsWhitespace)
}

func TestTokenizeWhitespaceRuns(t *testing.T) {
	tokens := Tokenize("एक  दो")
	require.Len(t, tokens, 3)
	assert.Equal(t, "  ", tokens[1].Text)
	assert.True(t, tokens[1].IsWhitespace)
}

func TestContent(t *testing.T) {
	tokens := Tokenize(" एक दो ")
	content := Content(tokens)
	require.Len(t, content, 2)
	assert.Equal(t, "एक", content[0].Text)
	assert.Equal(t, "दो", content[1].Text)
}

func TestStripPunct(t *testing.T) {
	cases := map[string]string{
		"गया।":    "गया",
		"क्या?":   "क्या",
		"रुको!":   "रुको",
		"'वाह'":   "वाह",
		"साफ":     "साफ",
		"(कोष्ठक)": "कोष्ठक",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripPunct(in))
	}
}

func TestStripAllPunct(t *testing.T) {
	assert.Equal(t, "घरवाला", StripAllPunct("घर-वाला"))
	assert.Equal(t, "गया", StripAllPunct("गया।"))
}
