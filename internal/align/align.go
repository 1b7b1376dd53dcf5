// Package align computes a position-synchronized correspondence between
// the token sequences of a stage's input and output. It is a greedy
// two-pointer walk, not a minimum-edit-distance diff: the two texts are
// expected to differ only locally (single- or few-word corrections), so
// positional pairing is cheap and close enough. A Levenshtein/Myers diff
// over tokens would slot in behind the same Align contract if block moves
// ever become common.
package align

import (
	"strings"

	"github.com/vyakarni1/vyakarni/internal/tokenizer"
)

// Missing is the synthesized token standing in for the absent side of an
// insertion or deletion. It is deliberately unlikely to occur in real
// text; the highlight builder skips corrections carrying it.
const Missing = "[अनुपस्थित]"

// ChangeType says how a pair of aligned tokens differs.
type ChangeType string

const (
	Substitution ChangeType = "substitution"
	Insertion    ChangeType = "insertion"
	Deletion     ChangeType = "deletion"
	Compound     ChangeType = "compound" // word split or joined
	Case         ChangeType = "case"     // letter-case / normalization only
)

// Pair is one aligned difference. Transient: produced here, consumed
// immediately by the classifier, never persisted.
type Pair struct {
	OriginalToken  string
	CorrectedToken string
	ChangeType     ChangeType
}

// Align walks before and after in lockstep and reports the differing
// positions. Whitespace tokens are excluded from the walk; unchanged
// positions produce no pair. Output order follows input order and no two
// pairs cover the same position.
func Align(before, after []tokenizer.Token) []Pair {
	b := tokenizer.Content(before)
	a := tokenizer.Content(after)

	var pairs []Pair
	i, j := 0, 0
	for i < len(b) || j < len(a) {
		switch {
		case i >= len(b):
			pairs = append(pairs, Pair{
				OriginalToken:  Missing,
				CorrectedToken: a[j].Text,
				ChangeType:     Insertion,
			})
			j++
		case j >= len(a):
			pairs = append(pairs, Pair{
				OriginalToken:  b[i].Text,
				CorrectedToken: Missing,
				ChangeType:     Deletion,
			})
			i++
		default:
			bt, at := b[i].Text, a[j].Text
			if tokenizer.StripPunct(bt) == tokenizer.StripPunct(at) {
				i++
				j++
				continue
			}
			pairs = append(pairs, Pair{
				OriginalToken:  bt,
				CorrectedToken: at,
				ChangeType:     classifyChange(bt, at),
			})
			i++
			j++
		}
	}
	return pairs
}

func classifyChange(before, after string) ChangeType {
	if stripSpace(before) == stripSpace(after) {
		return Compound
	}
	if strings.ToLower(before) == strings.ToLower(after) {
		return Case
	}
	return Substitution
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
