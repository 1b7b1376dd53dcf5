// Package highlight maps a final correction list back onto the original
// input text, producing the ordered segments the rendering layer uses for
// click-to-see-reason highlighting.
package highlight

import (
	"sort"
	"strings"

	"github.com/vyakarni1/vyakarni/internal/model"
)

// BuildSegments splits originalText into plain and highlighted spans.
// Each correction claims the first remaining occurrence of its incorrect
// form, scanning left to right; matched regions are consumed so the same
// substring is never claimed twice. Corrections whose incorrect form
// cannot be found (synthesized insertion markers, or forms introduced by
// an intermediate stage) are skipped here but stay in the correction list
// for the reason panel. Concatenating every segment's Text reproduces
// originalText exactly.
func BuildSegments(originalText string, corrections []model.Correction) []model.Segment {
	type match struct {
		start, end int
		index      int
	}
	var matches []match
	// Track consumed byte ranges so overlapping incorrect forms fall
	// through to the next unclaimed occurrence.
	consumed := make([]bool, len(originalText))

	for idx, c := range corrections {
		if c.Incorrect == "" {
			continue
		}
		from := 0
		for from < len(originalText) {
			rel := strings.Index(originalText[from:], c.Incorrect)
			if rel < 0 {
				break
			}
			start := from + rel
			end := start + len(c.Incorrect)
			if rangeFree(consumed, start, end) {
				for i := start; i < end; i++ {
					consumed[i] = true
				}
				matches = append(matches, match{start: start, end: end, index: idx})
				break
			}
			from = start + 1
		}
	}

	// Emit in text order regardless of correction order.
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var segments []model.Segment
	pos := 0
	for _, m := range matches {
		if m.start > pos {
			segments = append(segments, model.Segment{
				Text:            originalText[pos:m.start],
				Type:            model.SegmentNormal,
				CorrectionIndex: -1,
			})
		}
		segments = append(segments, model.Segment{
			Text:            originalText[m.start:m.end],
			IsHighlighted:   true,
			Type:            model.SegmentIncorrect,
			CorrectionIndex: m.index,
		})
		pos = m.end
	}
	if pos < len(originalText) {
		segments = append(segments, model.Segment{
			Text:            originalText[pos:],
			Type:            model.SegmentNormal,
			CorrectionIndex: -1,
		})
	}
	return segments
}

func rangeFree(consumed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if consumed[i] {
			return false
		}
	}
	return true
}
