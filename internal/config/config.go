// Package config loads the decoder's Parameters and Weight from a YAML
// file, with defaults matching spec.md §6 (SPEC_FULL.md §2.2).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

// ErrVocabNotLoaded is returned by a Models constructor when no source or
// target vocabulary was configured.
var ErrVocabNotLoaded = errors.New("config: vocabulary not loaded")

// ErrRuleTableNotLoaded is returned when no rule table was configured.
var ErrRuleTableNotLoaded = errors.New("config: rule table not loaded")

// ErrLanguageModelNotLoaded is returned when no language model was
// configured.
var ErrLanguageModelNotLoaded = errors.New("config: language model not loaded")

// File is the on-disk YAML shape for Parameters and Weight together, the
// schema `cmd/hierodecode` reads its -config flag as.
type File struct {
	Parameters ParametersFile `yaml:"parameters"`
	Weight     WeightFile     `yaml:"weight"`
}

// ParametersFile is the YAML projection of decoder.Parameters. Every field
// is a pointer so an absent key in the file falls back to
// decoder.DefaultParameters rather than to Go's int zero value.
type ParametersFile struct {
	BeamSize      *int     `yaml:"beam_size"`
	CubeSize      *int     `yaml:"cube_size"`
	NBestNum      *int     `yaml:"nbest_num"`
	SpanThreadNum *int     `yaml:"span_thread_num"`
	SpanLenMax    *int     `yaml:"span_len_max"`
	ProbNum       *int     `yaml:"prob_num"`
	DropOOV       *int     `yaml:"drop_oov"`
	OOVLogProb    *float64 `yaml:"oov_log_prob"`
}

// WeightFile is the YAML projection of decoder.Weight.
type WeightFile struct {
	TransWeights []float64 `yaml:"trans_weights"`
	LM           *float64  `yaml:"lm"`
	Len          *float64  `yaml:"len"`
	RuleNum      *float64  `yaml:"rule_num"`
	Glue         *float64  `yaml:"glue"`
	FW           *float64  `yaml:"fw"`
	FWVerb       *float64  `yaml:"fwverb"`
}

// Load reads and parses the YAML config at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses the YAML config from r.
func Read(r io.Reader) (*File, error) {
	var cfg File
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// ToParameters overlays the file's set fields onto decoder.DefaultParameters.
func (f *File) ToParameters() decoder.Parameters {
	p := decoder.DefaultParameters()
	pf := f.Parameters
	if pf.BeamSize != nil {
		p.BeamSize = *pf.BeamSize
	}
	if pf.CubeSize != nil {
		p.CubeSize = *pf.CubeSize
	}
	if pf.NBestNum != nil {
		p.NBestNum = *pf.NBestNum
	}
	if pf.SpanThreadNum != nil {
		p.SpanThreadNum = *pf.SpanThreadNum
	}
	if pf.SpanLenMax != nil {
		p.SpanLenMax = *pf.SpanLenMax
	}
	if pf.ProbNum != nil {
		p.ProbNum = *pf.ProbNum
	}
	if pf.DropOOV != nil {
		p.DropOOV = *pf.DropOOV
	}
	if pf.OOVLogProb != nil {
		p.OOVLogProb = *pf.OOVLogProb
	}
	return p
}

// ToWeight overlays the file's set fields onto decoder.DefaultWeight(probNum).
func (f *File) ToWeight(probNum int) decoder.Weight {
	w := decoder.DefaultWeight(probNum)
	wf := f.Weight
	if len(wf.TransWeights) > 0 {
		w.TransWeights = wf.TransWeights
	}
	if wf.LM != nil {
		w.LM = *wf.LM
	}
	if wf.Len != nil {
		w.Len = *wf.Len
	}
	if wf.RuleNum != nil {
		w.RuleNum = *wf.RuleNum
	}
	if wf.Glue != nil {
		w.Glue = *wf.Glue
	}
	if wf.FW != nil {
		w.FW = *wf.FW
	}
	if wf.FWVerb != nil {
		w.FWVerb = *wf.FWVerb
	}
	return w
}

// NewModels assembles a decoder.Models from its collaborators, refusing to
// build one with any of the three load-bearing dependencies missing
// (spec.md §7's initialization failures).
func NewModels(srcVocab, tgtVocab decoder.Vocab, rt decoder.RuleTable, languageModel decoder.LanguageModel, fw decoder.FunctionWordSet) (decoder.Models, error) {
	if srcVocab == nil || tgtVocab == nil {
		return decoder.Models{}, ErrVocabNotLoaded
	}
	if rt == nil {
		return decoder.Models{}, ErrRuleTableNotLoaded
	}
	if languageModel == nil {
		return decoder.Models{}, ErrLanguageModelNotLoaded
	}
	return decoder.Models{
		SrcVocab:      srcVocab,
		TgtVocab:      tgtVocab,
		RuleTable:     rt,
		LM:            languageModel,
		FunctionWords: fw,
	}, nil
}

// Validate reports whether the configured parameters are internally
// consistent: positive beam_size, cube_size and prob_num, and a trans-weight
// vector matching ProbNum. The other parameters are not checked.
func (f *File) Validate() error {
	p := f.ToParameters()
	if p.BeamSize <= 0 {
		return fmt.Errorf("config: beam_size must be positive, got %d", p.BeamSize)
	}
	if p.CubeSize <= 0 {
		return fmt.Errorf("config: cube_size must be positive, got %d", p.CubeSize)
	}
	if p.ProbNum <= 0 {
		return fmt.Errorf("config: prob_num must be positive, got %d", p.ProbNum)
	}
	if len(f.Weight.TransWeights) > 0 && len(f.Weight.TransWeights) != p.ProbNum {
		return fmt.Errorf("config: weight.trans_weights has %d entries, want %d (prob_num)",
			len(f.Weight.TransWeights), p.ProbNum)
	}
	return nil
}
