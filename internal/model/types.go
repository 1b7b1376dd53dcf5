// Package model holds the domain types shared across the correction
// pipeline: corrections, their classification enums and the final result
// returned to callers. All values here are JSON-serialisable as-is.
package model

// CorrectionType classifies what kind of mistake a correction fixes.
type CorrectionType string

const (
	TypeGrammar     CorrectionType = "grammar"
	TypeSpelling    CorrectionType = "spelling"
	TypePunctuation CorrectionType = "punctuation"
	TypeStyle       CorrectionType = "style"
	TypeDictionary  CorrectionType = "dictionary"
	TypeSyntax      CorrectionType = "syntax"
)

// Source identifies which collaborator produced a correction.
type Source string

const (
	SourceDictionary Source = "dictionary"
	SourceAI         Source = "ai"
)

// Correction is one recorded (incorrect → correct) change. Immutable once
// created; stages only ever append new ones, so Step always names the stage
// that actually produced the entry.
type Correction struct {
	Incorrect string         `json:"incorrect"`
	Correct   string         `json:"correct"`
	Reason    string         `json:"reason"`
	Type      CorrectionType `json:"type"`
	Source    Source         `json:"source"`
	Step      string         `json:"step"`
}

// Result is the outcome of a full pipeline run.
type Result struct {
	RequestID    string       `json:"requestId"`
	Original     string       `json:"original"`
	Corrected    string       `json:"corrected"`
	EditDistance int          `json:"editDistance"` // rune-level Levenshtein
	Corrections  []Correction `json:"corrections"`
}

// SegmentType tags a highlight segment for the rendering layer.
type SegmentType string

const (
	SegmentNormal    SegmentType = "normal"
	SegmentIncorrect SegmentType = "incorrect"
	SegmentCorrect   SegmentType = "correct"
)

// Segment is a span of the original text, optionally linked to a
// correction. Concatenating Segment.Text over a full segment list
// reproduces the original text exactly.
type Segment struct {
	Text            string      `json:"text"`
	IsHighlighted   bool        `json:"isHighlighted"`
	Type            SegmentType `json:"type"`
	CorrectionIndex int         `json:"correctionIndex"` // -1 when not linked
}
