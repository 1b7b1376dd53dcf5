// Package options provides functional options for tuning a correction
// pipeline run without widening constructor signatures.
package options

// DefaultOptions is the conservative baseline every pipeline starts from.
var DefaultOptions = PipelineOptions{
	MaxDictionaryPasses: 5,
	DeriveAICorrections: true,
	Deduplicate:         true,
}

// PipelineOptions collects the tunables of a pipeline run.
type PipelineOptions struct {
	// MaxDictionaryPasses bounds the dictionary fixed-point loop.
	MaxDictionaryPasses int
	// DeriveAICorrections controls whether an external stage that returns
	// no correction list gets one derived via tokenize+align+classify.
	DeriveAICorrections bool
	// Deduplicate collapses repeated (incorrect, correct) pairs across
	// stages, keeping the first occurrence.
	Deduplicate bool
}

// Option mutates PipelineOptions during construction.
type Option interface {
	Apply(opts *PipelineOptions)
}

// FuncOption adapts a closure to the Option interface.
type FuncOption struct {
	ops func(opts *PipelineOptions)
}

func (f FuncOption) Apply(opts *PipelineOptions) {
	f.ops(opts)
}

// NewFuncOption wraps a closure as an Option.
func NewFuncOption(f func(opts *PipelineOptions)) *FuncOption {
	return &FuncOption{ops: f}
}

// WithMaxDictionaryPasses caps the dictionary fixed-point loop.
func WithMaxDictionaryPasses(n int) Option {
	return NewFuncOption(func(opts *PipelineOptions) {
		opts.MaxDictionaryPasses = n
	})
}

// WithoutDerivedAICorrections trusts external stages entirely: if the
// collaborator returns no corrections, none are synthesized.
func WithoutDerivedAICorrections() Option {
	return NewFuncOption(func(opts *PipelineOptions) {
		opts.DeriveAICorrections = false
	})
}

// WithoutDeduplication keeps every correction from every stage, repeats
// included. Mainly useful for debugging stage behaviour.
func WithoutDeduplication() Option {
	return NewFuncOption(func(opts *PipelineOptions) {
		opts.Deduplicate = false
	})
}
