package config

import "github.com/hierodecode/hierodecode/internal/decoder"

type fakeVocab struct{}

func (fakeVocab) GetID(word string) int { return 0 }
func (fakeVocab) GetWord(id int) string { return "" }

type fakeRuleTable struct{}

func (fakeRuleTable) PrefixMatch(ids []int, start int) []decoder.RankedTargetRules {
	return make([]decoder.RankedTargetRules, len(ids)-start)
}

type fakeLM struct{}

func (fakeLM) IncreasedLMScore(cand *decoder.Candidate) float64      { return 0 }
func (fakeLM) FinalIncreasedLMScore(cand *decoder.Candidate) float64 { return 0 }
