package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyakarni1/vyakarni/internal/align"
	"github.com/vyakarni1/vyakarni/internal/model"
)

func TestClassifyGenderSuffixIsGrammar(t *testing.T) {
	c := Classify(align.Pair{
		OriginalToken:  "गया",
		CorrectedToken: "गयी",
		ChangeType:     align.Substitution,
	}, "ai-correction")
	require.NotNil(t, c)
	assert.Equal(t, model.TypeGrammar, c.Type)
	assert.Equal(t, model.SourceAI, c.Source)
	assert.Equal(t, "ai-correction", c.Step)
	assert.Contains(t, c.Reason, "गया")
	assert.Contains(t, c.Reason, "गयी")
}

func TestClassifyPostpositionIsGrammar(t *testing.T) {
	c := Classify(align.Pair{
		OriginalToken:  "रामने",
		CorrectedToken: "रामको",
		ChangeType:     align.Substitution,
	}, "s")
	require.NotNil(t, c)
	assert.Equal(t, model.TypeGrammar, c.Type)
}

func TestClassifyConfusableIsSpelling(t *testing.T) {
	// ं vs ँ differ only within a known confusable pair.
	c := Classify(align.Pair{
		OriginalToken:  "चांद",
		CorrectedToken: "चाँद",
		ChangeType:     align.Substitution,
	}, "s")
	require.NotNil(t, c)
	assert.Equal(t, model.TypeSpelling, c.Type)
}

func TestClassifyCompoundIsSpelling(t *testing.T) {
	c := Classify(align.Pair{
		OriginalToken:  "घर वाला",
		CorrectedToken: "घरवाला",
		ChangeType:     align.Compound,
	}, "s")
	require.NotNil(t, c)
	assert.Equal(t, model.TypeSpelling, c.Type)
}

func TestClassifyCaseIsGrammar(t *testing.T) {
	c := Classify(align.Pair{
		OriginalToken:  "Ram",
		CorrectedToken: "ram",
		ChangeType:     align.Case,
	}, "s")
	require.NotNil(t, c)
	assert.Equal(t, model.TypeGrammar, c.Type)
}

func TestClassifyInsertionDeletionAreSyntax(t *testing.T) {
	ins := Classify(align.Pair{
		OriginalToken:  align.Missing,
		CorrectedToken: "घर",
		ChangeType:     align.Insertion,
	}, "s")
	require.NotNil(t, ins)
	assert.Equal(t, model.TypeSyntax, ins.Type)
	assert.Equal(t, align.Missing, ins.Incorrect)

	del := Classify(align.Pair{
		OriginalToken:  "घर",
		CorrectedToken: align.Missing,
		ChangeType:     align.Deletion,
	}, "s")
	require.NotNil(t, del)
	assert.Equal(t, model.TypeSyntax, del.Type)
}

func TestClassifyInternalPunctuation(t *testing.T) {
	c := Classify(align.Pair{
		OriginalToken:  "घर-वाला",
		CorrectedToken: "घर,वाला",
		ChangeType:     align.Substitution,
	}, "s")
	require.NotNil(t, c)
	assert.Equal(t, model.TypePunctuation, c.Type)
}

func TestClassifyNoise(t *testing.T) {
	// Both sides single runes.
	assert.Nil(t, Classify(align.Pair{
		OriginalToken:  "क",
		CorrectedToken: "ख",
		ChangeType:     align.Substitution,
	}, "s"))

	// Both sides reduce to the same string once edge punctuation and
	// whitespace are stripped.
	assert.Nil(t, Classify(align.Pair{
		OriginalToken:  "गया।",
		CorrectedToken: "गया",
		ChangeType:     align.Substitution,
	}, "s"))
}

func TestClassifyDefaultIsSyntax(t *testing.T) {
	c := Classify(align.Pair{
		OriginalToken:  "असम",
		CorrectedToken: "मगध",
		ChangeType:     align.Substitution,
	}, "s")
	require.NotNil(t, c)
	assert.Equal(t, model.TypeSyntax, c.Type)
}
