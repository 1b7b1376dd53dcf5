package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyakarni1/vyakarni/internal/dictionary"
	"github.com/vyakarni1/vyakarni/internal/model"
	"github.com/vyakarni1/vyakarni/pkg/options"
)

func newEngine() *dictionary.Engine {
	return dictionary.NewEngine(dictionary.BuiltinRules(), nil)
}

func echoExternal(transform func(string) string) ExternalFunc {
	return func(ctx context.Context, text string) (*ExternalResult, error) {
		return &ExternalResult{CorrectedText: transform(text)}, nil
	}
}

func TestRunDictionaryOnly(t *testing.T) {
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageDictionary, Name: "dictionary-1"},
	}, nil)
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "मां गई")
	require.NoError(t, err)
	assert.Equal(t, "माँ गयी", res.Corrected)
	assert.Equal(t, "मां गई", res.Original)
	assert.NotEmpty(t, res.RequestID)
	require.Len(t, res.Corrections, 2)
	for _, c := range res.Corrections {
		assert.Equal(t, model.TypeSpelling, c.Type)
		assert.Equal(t, model.SourceDictionary, c.Source)
		assert.Equal(t, "dictionary-1", c.Step)
	}
}

func TestRunDerivesExternalCorrections(t *testing.T) {
	external := echoExternal(func(text string) string {
		if text == "राम घर गया" {
			return "राम घर गयी"
		}
		return text
	})
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageExternal, Name: "ai-correction", Call: external},
	}, nil)
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "राम घर गया")
	require.NoError(t, err)
	assert.Equal(t, "राम घर गयी", res.Corrected)
	require.Len(t, res.Corrections, 1)
	c := res.Corrections[0]
	assert.Equal(t, "गया", c.Incorrect)
	assert.Equal(t, "गयी", c.Correct)
	assert.Equal(t, model.TypeGrammar, c.Type)
	assert.Equal(t, model.SourceAI, c.Source)
	assert.Equal(t, "ai-correction", c.Step)
}

func TestRunTrustsSuppliedCorrections(t *testing.T) {
	external := func(ctx context.Context, text string) (*ExternalResult, error) {
		return &ExternalResult{
			CorrectedText: "ठीक पाठ",
			Corrections: []model.Correction{
				{Incorrect: "गलत", Correct: "ठीक", Reason: "कारण", Type: model.TypeStyle},
			},
		}, nil
	}
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageExternal, Name: "ai-correction", Call: external},
	}, nil)
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "गलत पाठ")
	require.NoError(t, err)
	require.Len(t, res.Corrections, 1)
	assert.Equal(t, model.TypeStyle, res.Corrections[0].Type)
	assert.Equal(t, model.SourceAI, res.Corrections[0].Source)
	assert.Equal(t, "ai-correction", res.Corrections[0].Step)
}

func TestRunProvenanceMatchesStages(t *testing.T) {
	pipe, err := New(newEngine(), DefaultStages(echoExternal(func(s string) string { return s })), nil)
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "मां कहां गई")
	require.NoError(t, err)

	valid := make(map[string]bool)
	for _, st := range pipe.Stages() {
		valid[st.Name] = true
	}
	for _, c := range res.Corrections {
		assert.True(t, valid[c.Step], "step %q must name a stage that ran", c.Step)
	}
}

func TestRunDeduplicates(t *testing.T) {
	// Two dictionary stages over text whose incorrect form reappears
	// would repeat the same (incorrect, correct) pair without dedup.
	external := echoExternal(func(string) string { return "मां गई" })
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageDictionary, Name: "dictionary-1"},
		{Kind: StageExternal, Name: "ai-correction", Call: external},
		{Kind: StageDictionary, Name: "dictionary-2"},
	}, nil)
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "मां गई")
	require.NoError(t, err)

	seen := make(map[[2]string]int)
	for _, c := range res.Corrections {
		seen[[2]string{c.Incorrect, c.Correct}]++
	}
	for pair, n := range seen {
		assert.Equal(t, 1, n, "pair %v must appear once", pair)
	}
	// First occurrence wins: the dictionary-1 step survives.
	require.NotEmpty(t, res.Corrections)
	assert.Equal(t, "dictionary-1", res.Corrections[0].Step)
}

func TestRunExternalFailureAborts(t *testing.T) {
	boom := errors.New("quota exceeded")
	external := func(ctx context.Context, text string) (*ExternalResult, error) {
		return nil, boom
	}
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageDictionary, Name: "dictionary-1"},
		{Kind: StageExternal, Name: "ai-correction", Call: external},
		{Kind: StageDictionary, Name: "dictionary-2"},
	}, nil)
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "मां गई")
	assert.Nil(t, res, "no partially corrected text may escape")
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, 1, stageErr.Index)
	assert.Equal(t, StageExternal, stageErr.Kind)
	assert.Equal(t, "ai-correction", stageErr.Name)
	assert.ErrorIs(t, err, boom)
}

func TestRunCancellationBeforeStage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipe, err := New(newEngine(), []Stage{{Kind: StageDictionary}}, nil)
	require.NoError(t, err)

	_, err = pipe.Run(ctx, "मां")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCancellationAfterLateExternalResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	external := func(ctx context.Context, text string) (*ExternalResult, error) {
		// Result "arrives" just as the caller gives up.
		cancel()
		return &ExternalResult{CorrectedText: "मां"}, nil
	}
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageExternal, Name: "ai-correction", Call: external},
		{Kind: StageDictionary, Name: "dictionary-1"},
	}, nil)
	require.NoError(t, err)

	res, err := pipe.Run(ctx, "मां")
	assert.Nil(t, res, "a late result must not be fed to further stages")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadStages(t *testing.T) {
	_, err := New(newEngine(), []Stage{{Kind: "teleport"}}, nil)
	assert.Error(t, err)

	_, err = New(newEngine(), []Stage{{Kind: StageExternal}}, nil)
	assert.Error(t, err)
}

func TestNewGeneratesStageNames(t *testing.T) {
	pipe, err := New(newEngine(), []Stage{{Kind: StageDictionary}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stage-1-dictionary", pipe.Stages()[0].Name)
}

func TestStagesFromPlan(t *testing.T) {
	stages, err := StagesFromPlan(
		[]string{"dictionary", "external", "dictionary", "dictionary"},
		echoExternal(func(s string) string { return s }),
	)
	require.NoError(t, err)
	require.Len(t, stages, 4)
	assert.Equal(t, "dictionary-1", stages[0].Name)
	assert.Equal(t, "ai-correction", stages[1].Name)
	assert.Equal(t, "dictionary-2", stages[2].Name)
	assert.Equal(t, "dictionary-3", stages[3].Name)

	_, err = StagesFromPlan([]string{"nope"}, nil)
	assert.Error(t, err)
}

func TestRunWithoutDeduplication(t *testing.T) {
	external := echoExternal(func(string) string { return "मां" })
	pipe, err := New(newEngine(), []Stage{
		{Kind: StageDictionary, Name: "dictionary-1"},
		{Kind: StageExternal, Name: "ai-correction", Call: external},
		{Kind: StageDictionary, Name: "dictionary-2"},
	}, nil, options.WithoutDeduplication())
	require.NoError(t, err)

	res, err := pipe.Run(context.Background(), "मां")
	require.NoError(t, err)
	// The external stage reintroduces the incorrect form, so both
	// dictionary stages report the same pair.
	count := 0
	for _, c := range res.Corrections {
		if c.Incorrect == "मां" && c.Correct == "माँ" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}
