// Package classify turns aligned token differences into user-facing
// corrections: a category plus a Hindi rationale naming both forms.
package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vyakarni1/vyakarni/internal/align"
	"github.com/vyakarni1/vyakarni/internal/model"
	"github.com/vyakarni1/vyakarni/internal/tokenizer"
)

// Hindi case/postposition and gender/tense markers, tested in order.
// Matching either side of a substitution marks the change grammatical.
// This is a heuristic suffix list, not a morphological analysis.
var grammarSuffixes = []string{
	"का", "की", "के", // possessive
	"ने",       // ergative
	"को",       // accusative/dative
	"में", "पर", // locative
	"से",              // ablative/instrumental
	"या", "यी", "ये", // perfective gender/number forms
	"ता", "ती", "ते", // imperfective forms
	"गा", "गी", "गे", // future forms
}

// Devanagari pairs routinely conflated in typing: nasalization marks,
// short/long vowel signs. A substitution within one of these pairs is a
// spelling slip, not a grammatical change.
var confusablePairs = map[[2]string]bool{
	{"ं", "ँ"}: true, {"ँ", "ं"}: true,
	{"ि", "ी"}: true, {"ी", "ि"}: true,
	{"ु", "ू"}: true, {"ू", "ु"}: true,
	{"इ", "ई"}: true, {"ई", "इ"}: true,
	{"उ", "ऊ"}: true, {"ऊ", "उ"}: true,
}

// Classify maps one aligned difference to a correction, or nil when the
// change is judged insignificant: both sides reduce to the same string
// once punctuation and whitespace are stripped, or both sides are single
// runes (noise threshold). The step tag names the producing stage.
func Classify(pair align.Pair, step string) *model.Correction {
	before, after := pair.OriginalToken, pair.CorrectedToken

	if pair.ChangeType != align.Insertion && pair.ChangeType != align.Deletion {
		if reduce(before) == reduce(after) {
			return nil
		}
		if utf8.RuneCountInString(before) == 1 && utf8.RuneCountInString(after) == 1 {
			return nil
		}
	}

	typ, reason := categorize(pair)
	return &model.Correction{
		Incorrect: before,
		Correct:   after,
		Reason:    reason,
		Type:      typ,
		Source:    model.SourceAI,
		Step:      step,
	}
}

func categorize(pair align.Pair) (model.CorrectionType, string) {
	before, after := pair.OriginalToken, pair.CorrectedToken

	switch pair.ChangeType {
	case align.Compound:
		return model.TypeSpelling,
			fmt.Sprintf("'%s' को मानक रूप '%s' में लिखा जाता है", before, after)
	case align.Case:
		return model.TypeGrammar,
			fmt.Sprintf("'%s' के स्थान पर '%s' उपयुक्त रूप है", before, after)
	case align.Insertion:
		return model.TypeSyntax,
			fmt.Sprintf("वाक्य में '%s' शब्द जोड़ा गया", after)
	case align.Deletion:
		return model.TypeSyntax,
			fmt.Sprintf("वाक्य से '%s' शब्द हटाया गया", before)
	}

	if isConfusableSlip(before, after) {
		return model.TypeSpelling,
			fmt.Sprintf("वर्तनी सुधार: '%s' के स्थान पर '%s' लिखा जाता है", before, after)
	}
	if hasGrammarSuffix(before) || hasGrammarSuffix(after) {
		return model.TypeGrammar,
			fmt.Sprintf("व्याकरण की दृष्टि से '%s' के स्थान पर '%s' उपयुक्त है", before, after)
	}
	if tokenizer.StripAllPunct(before) == tokenizer.StripAllPunct(after) {
		return model.TypePunctuation,
			fmt.Sprintf("विराम चिह्न सुधार: '%s' के स्थान पर '%s'", before, after)
	}
	return model.TypeSyntax,
		fmt.Sprintf("वाक्य रचना सुधार: '%s' के स्थान पर '%s'", before, after)
}

func hasGrammarSuffix(s string) bool {
	w := tokenizer.StripPunct(s)
	for _, suf := range grammarSuffixes {
		if w == suf || strings.HasSuffix(w, suf) {
			return true
		}
	}
	return false
}

// isConfusableSlip reports whether before and after differ only by
// substituting runes within a known confusable pair.
func isConfusableSlip(before, after string) bool {
	ra, rb := []rune(before), []rune(after)
	if len(ra) != len(rb) {
		return false
	}
	slip := false
	for i := range ra {
		if ra[i] == rb[i] {
			continue
		}
		if !confusablePairs[[2]string{string(ra[i]), string(rb[i])}] {
			return false
		}
		slip = true
	}
	return slip
}

// reduce trims edge punctuation and whitespace. Deliberately not
// StripAllPunct: internal punctuation differences are significant and
// belong to the punctuation category.
func reduce(s string) string {
	return strings.TrimSpace(tokenizer.StripPunct(s))
}
