package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadParsesYAMLIntoFile(t *testing.T) {
	y := `
parameters:
  beam_size: 50
  cube_size: 20
  prob_num: 3
weight:
  trans_weights: [0.5, 0.5, 1.0]
  lm: 2.0
`
	f, err := Read(strings.NewReader(y))
	require.NoError(t, err)
	require.NotNil(t, f.Parameters.BeamSize)
	require.Equal(t, 50, *f.Parameters.BeamSize)
	require.Equal(t, []float64{0.5, 0.5, 1.0}, f.Weight.TransWeights)
	require.Equal(t, 2.0, *f.Weight.LM)
}

func TestToParametersOverlaysOnlySetFields(t *testing.T) {
	f := &File{}
	f.Parameters.BeamSize = intPtr(5)

	p := f.ToParameters()
	require.Equal(t, 5, p.BeamSize)
	require.Equal(t, 100, p.CubeSize) // untouched field keeps the default
	require.Equal(t, 10, p.NBestNum)
}

func TestToWeightOverlaysOnlySetFields(t *testing.T) {
	f := &File{}
	f.Weight.Glue = floatPtr(3.5)

	w := f.ToWeight(2)
	require.Equal(t, 3.5, w.Glue)
	require.Equal(t, 1.0, w.LM) // default
	require.Len(t, w.TransWeights, 2)
}

func TestNewModelsRejectsMissingVocab(t *testing.T) {
	_, err := NewModels(nil, nil, fakeRuleTable{}, fakeLM{}, nil)
	require.ErrorIs(t, err, ErrVocabNotLoaded)
}

func TestNewModelsRejectsMissingRuleTable(t *testing.T) {
	_, err := NewModels(fakeVocab{}, fakeVocab{}, nil, fakeLM{}, nil)
	require.ErrorIs(t, err, ErrRuleTableNotLoaded)
}

func TestNewModelsRejectsMissingLanguageModel(t *testing.T) {
	_, err := NewModels(fakeVocab{}, fakeVocab{}, fakeRuleTable{}, nil, nil)
	require.ErrorIs(t, err, ErrLanguageModelNotLoaded)
}

func TestNewModelsSucceedsWithAllCollaborators(t *testing.T) {
	m, err := NewModels(fakeVocab{}, fakeVocab{}, fakeRuleTable{}, fakeLM{}, nil)
	require.NoError(t, err)
	require.NotNil(t, m.SrcVocab)
}

func TestValidateRejectsNonPositiveBeamSize(t *testing.T) {
	f := &File{}
	f.Parameters.BeamSize = intPtr(0)
	err := f.Validate()
	require.Error(t, err)
}

func TestValidateRejectsMismatchedTransWeightsLength(t *testing.T) {
	f := &File{}
	f.Parameters.ProbNum = intPtr(2)
	f.Weight.TransWeights = []float64{1.0}
	err := f.Validate()
	require.Error(t, err)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	f := &File{}
	require.NoError(t, f.Validate())
}

func intPtr(v int) *int            { return &v }
func floatPtr(v float64) *float64 { return &v }
