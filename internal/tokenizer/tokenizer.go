// Package tokenizer splits a text blob into content tokens and the
// whitespace runs between them. Whitespace is kept as tokens of its own so
// that concatenating every Token.Text reproduces the input byte for byte.
package tokenizer

import (
	"strings"
	"unicode"
)

// Token is one run of content or whitespace. Offsets are byte offsets into
// the text passed to Tokenize; tokens are never mutated after creation.
type Token struct {
	Text         string
	IsWhitespace bool
	StartOffset  int
	EndOffset    int
}

// Tokenize splits text on whitespace runs, keeping the runs. Sentence
// punctuation (। . ! ?) stays attached to the preceding content token;
// StripPunct exposes the bare form when alignment needs it.
func Tokenize(text string) []Token {
	var tokens []Token
	start := 0
	inSpace := false
	for i, r := range text {
		isSpace := unicode.IsSpace(r)
		if i == 0 {
			inSpace = isSpace
			continue
		}
		if isSpace != inSpace {
			tokens = append(tokens, Token{
				Text:         text[start:i],
				IsWhitespace: inSpace,
				StartOffset:  start,
				EndOffset:    i,
			})
			start = i
			inSpace = isSpace
		}
	}
	if len(text) > 0 {
		tokens = append(tokens, Token{
			Text:         text[start:],
			IsWhitespace: inSpace,
			StartOffset:  start,
			EndOffset:    len(text),
		})
	}
	return tokens
}

// Content filters a token sequence down to its non-whitespace tokens.
func Content(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsWhitespace {
			out = append(out, t)
		}
	}
	return out
}

// sentence-final and clause punctuation, Devanagari danda included
const punctCutset = "।.!?,;:'\"“”‘’()[]{}—-"

// StripPunct trims surrounding punctuation from a token's text, leaving
// the bare word form used for alignment comparisons.
func StripPunct(s string) string {
	return strings.Trim(s, punctCutset)
}

// StripAllPunct removes punctuation everywhere in s, not just at the
// edges. The classifier uses this to detect punctuation-only changes.
func StripAllPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctCutset, r) {
			return -1
		}
		return r
	}, s)
}
