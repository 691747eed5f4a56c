package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/hierodecode/hierodecode/internal/config"
	"github.com/hierodecode/hierodecode/internal/decoder"
	"github.com/hierodecode/hierodecode/internal/lexutil"
	"github.com/hierodecode/hierodecode/internal/lm"
	"github.com/hierodecode/hierodecode/internal/ruletable"
	"github.com/hierodecode/hierodecode/internal/vocab"
)

// modelFlags collects the flags every subcommand needs to assemble a
// decoder.Models and its runtime Parameters/Weight. With none of
// srcVocab/tgtVocab/rules/lm set, loadModels returns an empty in-memory
// rule table and floor-only language model, so every source word decodes
// as an OOV passthrough, a degenerate but legitimate standalone default
// (SPEC_FULL.md §4).
type modelFlags struct {
	cfgPath       string
	srcVocabPath  string
	tgtVocabPath  string
	rulesPath     string
	rulesDBPath   string
	lmPath        string
	lmFloor       float64
	functionWords string
}

func (mf *modelFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&mf.srcVocabPath, "src-vocab", "", "source vocabulary file, one word per line")
	fs.StringVar(&mf.tgtVocabPath, "tgt-vocab", "", "target vocabulary file, one word per line")
	fs.StringVar(&mf.rulesPath, "rules", "", "rule table text file (see internal/ruletable.LoadText)")
	fs.StringVar(&mf.rulesDBPath, "rules-db", "", "Badger rule table directory (takes precedence over --rules)")
	fs.StringVar(&mf.lmPath, "lm", "", "language model bigram text file (see internal/lm.LoadText)")
	fs.Float64Var(&mf.lmFloor, "lm-floor", -100, "log-probability assigned to any bigram the language model never saw")
	fs.StringVar(&mf.functionWords, "function-words", "", "file of source function words, one per line")
}

type loadedModels struct {
	models decoder.Models
	params decoder.Parameters
	weight decoder.Weight
	closer func() error
}

func loadModels(mf *modelFlags) (*loadedModels, error) {
	srcVocab, err := openVocab(mf.srcVocabPath)
	if err != nil {
		return nil, fmt.Errorf("src-vocab: %w", err)
	}
	tgtVocab, err := openVocab(mf.tgtVocabPath)
	if err != nil {
		return nil, fmt.Errorf("tgt-vocab: %w", err)
	}

	var closer func() error
	var rt decoder.RuleTable
	switch {
	case mf.rulesDBPath != "":
		db, err := ruletable.OpenBadger(mf.rulesDBPath)
		if err != nil {
			return nil, err
		}
		rt, closer = db, db.Close
	case mf.rulesPath != "":
		f, err := os.Open(mf.rulesPath)
		if err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}
		defer f.Close()
		rt, err = ruletable.LoadText(f, srcVocab, tgtVocab)
		if err != nil {
			return nil, err
		}
	default:
		rt = ruletable.NewMemory()
	}

	languageModel, err := openLM(mf.lmPath, tgtVocab, mf.lmFloor)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}

	var fw decoder.FunctionWordSet
	if mf.functionWords != "" {
		f, err := os.Open(mf.functionWords)
		if err != nil {
			return nil, fmt.Errorf("function-words: %w", err)
		}
		defer f.Close()
		set, err := lexutil.LoadSet(f, srcVocab)
		if err != nil {
			return nil, fmt.Errorf("function-words: %w", err)
		}
		fw = set
	} else {
		fw = lexutil.NewSet(nil)
	}

	models, err := config.NewModels(srcVocab, tgtVocab, rt, languageModel, fw)
	if err != nil {
		return nil, err
	}

	params := decoder.DefaultParameters()
	weight := decoder.DefaultWeight(params.ProbNum)
	if mf.cfgPath != "" {
		cfg, err := config.Load(mf.cfgPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		params = cfg.ToParameters()
		weight = cfg.ToWeight(params.ProbNum)
	}

	return &loadedModels{models: models, params: params, weight: weight, closer: closer}, nil
}

func openVocab(path string) (decoder.Vocab, error) {
	if path == "" {
		return vocab.NewMemory(), nil
	}
	return vocab.LoadFile(path)
}

func openLM(path string, tgtVocab decoder.Vocab, floor float64) (decoder.LanguageModel, error) {
	if path == "" {
		ntID := tgtVocab.GetID("[X][X]")
		eosID := tgtVocab.GetID("<eos>")
		return lm.New(ntID, eosID, floor), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return lm.LoadText(f, tgtVocab, floor)
}
