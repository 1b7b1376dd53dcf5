// Package pipeline sequences the correction stages and carries
// provenance: every correction records the stage that produced it, the
// accumulated list is append-only, and deduplication happens exactly
// once, after the last stage.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vyakarni1/vyakarni/internal/align"
	"github.com/vyakarni1/vyakarni/internal/classify"
	"github.com/vyakarni1/vyakarni/internal/dictionary"
	"github.com/vyakarni1/vyakarni/internal/model"
	"github.com/vyakarni1/vyakarni/internal/tokenizer"
	"github.com/vyakarni1/vyakarni/pkg/options"
)

// StageKind discriminates the two rewrite pass kinds.
type StageKind string

const (
	StageDictionary StageKind = "dictionary"
	StageExternal   StageKind = "external"
)

// ExternalResult is what an external corrector returns. Corrections may
// be nil; the pipeline then derives them by diffing input against output.
type ExternalResult struct {
	CorrectedText string
	Corrections   []model.Correction
}

// ExternalFunc is the injected external-correction collaborator. The
// pipeline treats it as opaque: text in, corrected text out. Retry and
// backoff, if any, belong inside the collaborator.
type ExternalFunc func(ctx context.Context, text string) (*ExternalResult, error)

// Stage is one rewrite pass. Name becomes the Step tag on every
// correction the stage produces, so it must be stable and unique.
type Stage struct {
	Kind StageKind
	Name string
	Call ExternalFunc // required when Kind is StageExternal
}

// StageError reports which stage aborted a run. External-stage failures
// are fatal to the whole run: the caller never receives text that is
// half corrected without being told.
type StageError struct {
	Index int
	Kind  StageKind
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s %q): %v", e.Index, e.Kind, e.Name, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline runs an ordered stage plan over input text. Safe for
// concurrent use: runs share only the read-only engine and stage plan.
type Pipeline struct {
	engine *dictionary.Engine
	stages []Stage
	opts   options.PipelineOptions
	log    *zap.Logger
}

// New assembles a pipeline. Stages without a name get a generated
// "stage-N-kind" one so Step tags always resolve to a stage that ran.
func New(engine *dictionary.Engine, stages []Stage, log *zap.Logger, opts ...options.Option) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conf := options.DefaultOptions
	for _, o := range opts {
		o.Apply(&conf)
	}
	engine.SetMaxPasses(conf.MaxDictionaryPasses)

	named := make([]Stage, len(stages))
	for i, st := range stages {
		if st.Kind != StageDictionary && st.Kind != StageExternal {
			return nil, fmt.Errorf("stage %d: unknown kind %q", i, st.Kind)
		}
		if st.Kind == StageExternal && st.Call == nil {
			return nil, fmt.Errorf("stage %d (%s): external stage without a corrector", i, st.Name)
		}
		if st.Name == "" {
			st.Name = fmt.Sprintf("stage-%d-%s", i+1, st.Kind)
		}
		named[i] = st
	}
	return &Pipeline{engine: engine, stages: named, opts: conf, log: log}, nil
}

// DefaultStages is the production plan: a dictionary pass to normalize
// spelling before the AI sees the text, the AI pass, then two dictionary
// passes to restandardize anything the AI rewrote.
func DefaultStages(ai ExternalFunc) []Stage {
	return []Stage{
		{Kind: StageDictionary, Name: "dictionary-1"},
		{Kind: StageExternal, Name: "ai-correction", Call: ai},
		{Kind: StageDictionary, Name: "dictionary-2"},
		{Kind: StageDictionary, Name: "dictionary-final"},
	}
}

// StagesFromPlan builds a stage list from a config plan of "dictionary" /
// "external" entries. Dictionary stages are numbered in plan order; the
// external stages get the ai-correction name the UI provenance badges key
// on.
func StagesFromPlan(plan []string, ai ExternalFunc) ([]Stage, error) {
	var stages []Stage
	dict, ext := 0, 0
	for i, kind := range plan {
		switch StageKind(kind) {
		case StageDictionary:
			dict++
			stages = append(stages, Stage{
				Kind: StageDictionary,
				Name: fmt.Sprintf("dictionary-%d", dict),
			})
		case StageExternal:
			ext++
			name := "ai-correction"
			if ext > 1 {
				name = fmt.Sprintf("ai-correction-%d", ext)
			}
			stages = append(stages, Stage{Kind: StageExternal, Name: name, Call: ai})
		default:
			return nil, fmt.Errorf("stage plan entry %d: unknown kind %q", i, kind)
		}
	}
	return stages, nil
}

// Run executes the stage plan strictly in order, each stage consuming the
// previous stage's output. Cancellation is honoured at every stage
// boundary: a result arriving after ctx is done is never fed to the next
// stage.
func (p *Pipeline) Run(ctx context.Context, text string) (*model.Result, error) {
	requestID := uuid.New().String()
	current := text
	var corrections []model.Correction

	for i, st := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch st.Kind {
		case StageDictionary:
			next, found := p.engine.ApplyFixedPoint(st.Name, current)
			corrections = append(corrections, found...)
			current = next

		case StageExternal:
			res, err := st.Call(ctx, current)
			if err != nil {
				p.log.Error("external stage failed",
					zap.String("request_id", requestID),
					zap.Int("stage", i),
					zap.String("name", st.Name),
					zap.Error(err))
				return nil, &StageError{Index: i, Kind: st.Kind, Name: st.Name, Err: err}
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			found := res.Corrections
			if len(found) == 0 && p.opts.DeriveAICorrections {
				found = deriveCorrections(current, res.CorrectedText, st.Name)
			} else {
				found = stamp(found, st.Name)
			}
			corrections = append(corrections, found...)
			current = res.CorrectedText
		}
		p.log.Debug("stage complete",
			zap.String("request_id", requestID),
			zap.Int("stage", i),
			zap.String("name", st.Name),
			zap.Int("corrections", len(corrections)))
	}

	if p.opts.Deduplicate {
		corrections = dedupe(corrections)
	}
	return &model.Result{
		RequestID:    requestID,
		Original:     text,
		Corrected:    current,
		EditDistance: model.EditDistance(text, current),
		Corrections:  corrections,
	}, nil
}

// deriveCorrections discovers what an external stage changed by aligning
// its input and output token sequences and classifying each difference.
func deriveCorrections(before, after, step string) []model.Correction {
	pairs := align.Align(tokenizer.Tokenize(before), tokenizer.Tokenize(after))
	var out []model.Correction
	for _, pair := range pairs {
		if c := classify.Classify(pair, step); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// stamp tags collaborator-supplied corrections with their provenance.
// The entries are fresh per call, so this happens at creation time, not
// as a mutation of earlier stages' output.
func stamp(corrections []model.Correction, step string) []model.Correction {
	out := make([]model.Correction, len(corrections))
	for i, c := range corrections {
		c.Source = model.SourceAI
		c.Step = step
		out[i] = c
	}
	return out
}

// dedupe keeps the first correction for each (incorrect, correct) pair.
// The same rewrite discovered by two stages is shown to the user once.
func dedupe(corrections []model.Correction) []model.Correction {
	seen := make(map[[2]string]bool, len(corrections))
	out := corrections[:0:0]
	for _, c := range corrections {
		key := [2]string{c.Incorrect, c.Correct}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// Stages exposes the configured plan, mainly for health/debug endpoints.
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}
