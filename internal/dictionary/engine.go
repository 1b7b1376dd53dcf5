package dictionary

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vyakarni1/vyakarni/internal/model"
)

// DefaultMaxPasses bounds the fixed-point loop. A substitution can create
// a new occurrence of a later rule's incorrect form, so one pass is not
// always enough; the cap keeps ill-formed rule cycles (x→y, y→x) from
// looping forever.
const DefaultMaxPasses = 5

// Engine applies a replacement table to text. Safe for concurrent use:
// the rule slice is read-only after construction.
type Engine struct {
	rules     []Rule
	maxPasses int
	log       *zap.Logger
}

// NewEngine builds an Engine over an ordered rule table.
func NewEngine(rules []Rule, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{rules: rules, maxPasses: DefaultMaxPasses, log: log}
}

// SetMaxPasses overrides the fixed-point pass cap. Call before the engine
// is shared across goroutines.
func (e *Engine) SetMaxPasses(n int) {
	if n > 0 {
		e.maxPasses = n
	}
}

// Rules returns the engine's table in application order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Apply runs a single pass of the table over text. Rules apply
// cumulatively: each rule sees the output of the rules before it.
// Substitution is literal and global, never regex. A rule with no
// occurrences contributes nothing. The step tag names the pipeline stage
// on every emitted correction.
func (e *Engine) Apply(step, text string) (string, []model.Correction) {
	current := text
	var corrections []model.Correction
	for _, r := range e.rules {
		if !strings.Contains(current, r.Incorrect) {
			continue
		}
		current = strings.ReplaceAll(current, r.Incorrect, r.Correct)
		corrections = append(corrections, model.Correction{
			Incorrect: r.Incorrect,
			Correct:   r.Correct,
			Reason:    fmt.Sprintf("मानक वर्तनी के अनुसार '%s' के स्थान पर '%s' लिखा जाता है", r.Incorrect, r.Correct),
			Type:      model.TypeSpelling,
			Source:    model.SourceDictionary,
			Step:      step,
		})
	}
	return current, corrections
}

// ApplyFixedPoint re-applies the table until the text stops changing,
// bounded by the pass cap. Hitting the cap is not fatal: the last
// computed state is returned best-effort and a warning is logged.
func (e *Engine) ApplyFixedPoint(step, text string) (string, []model.Correction) {
	current := text
	var corrections []model.Correction
	for pass := 0; pass < e.maxPasses; pass++ {
		next, found := e.Apply(step, current)
		corrections = append(corrections, found...)
		if next == current {
			return current, corrections
		}
		current = next
	}
	// One probe pass to see whether the cap actually truncated anything.
	if probe, _ := e.Apply(step, current); probe != current {
		e.log.Warn("dictionary fixed point not reached, returning best effort",
			zap.Int("max_passes", e.maxPasses),
			zap.String("step", step))
	}
	return current, corrections
}
