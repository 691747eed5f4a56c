package lm

import (
	"testing"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

const (
	ntID  = 0
	eosID = 99
)

func TestIncreasedLMScoreFreshSeedSumsInternalBigrams(t *testing.T) {
	m := New(ntID, eosID, -10)
	m.Set(1, 2, -1)
	m.Set(2, 3, -2)

	cand := &decoder.Candidate{TgtWids: []int{1, 2, 3}}
	if got := m.IncreasedLMScore(cand); got != -3 {
		t.Fatalf("IncreasedLMScore() = %v, want -3", got)
	}
}

func TestIncreasedLMScoreFloorsUnseenBigrams(t *testing.T) {
	m := New(ntID, eosID, -10)
	cand := &decoder.Candidate{TgtWids: []int{1, 2}}
	if got := m.IncreasedLMScore(cand); got != -10 {
		t.Fatalf("IncreasedLMScore() = %v, want the floor -10", got)
	}
}

func TestIncreasedLMScoreSpliceOnlyCountsBoundaryBigrams(t *testing.T) {
	m := New(ntID, eosID, -100)
	// child1 = "a b", child2 = "c d"; rule pattern is "X1 mid X2" so the
	// newly introduced bigrams are (b,mid), (mid,c), never (a,b) or (c,d),
	// which are already inside each child's own LMProb.
	m.Set(2, 5, -1) // b -> mid
	m.Set(5, 3, -2) // mid -> c
	m.Set(1, 2, -99)
	m.Set(3, 4, -99)

	child1 := &decoder.Candidate{TgtWids: []int{1, 2}}
	child2 := &decoder.Candidate{TgtWids: []int{3, 4}}
	cand := &decoder.Candidate{
		ChildX1: child1,
		ChildX2: child2,
		AppliedRule: &decoder.Rule{
			TargetRule: &decoder.TargetRule{TgtWids: []int{ntID, 5, ntID}},
		},
	}
	if got := m.IncreasedLMScore(cand); got != -3 {
		t.Fatalf("IncreasedLMScore() = %v, want -3 (only the two boundary bigrams)", got)
	}
}

func TestIncreasedLMScoreSpliceAdjacentNonterminals(t *testing.T) {
	m := New(ntID, eosID, -100)
	m.Set(2, 3, -5) // b -> c, the only bigram this merge introduces
	child1 := &decoder.Candidate{TgtWids: []int{1, 2}}
	child2 := &decoder.Candidate{TgtWids: []int{3, 4}}
	cand := &decoder.Candidate{
		ChildX1: child1,
		ChildX2: child2,
		AppliedRule: &decoder.Rule{
			TargetRule: &decoder.TargetRule{TgtWids: []int{ntID, ntID}},
		},
	}
	if got := m.IncreasedLMScore(cand); got != -5 {
		t.Fatalf("IncreasedLMScore() = %v, want -5", got)
	}
}

func TestFinalIncreasedLMScoreScoresIntoEOS(t *testing.T) {
	m := New(ntID, eosID, -50)
	m.Set(3, eosID, -4)
	cand := &decoder.Candidate{TgtWids: []int{1, 2, 3}}
	if got := m.FinalIncreasedLMScore(cand); got != -4 {
		t.Fatalf("FinalIncreasedLMScore() = %v, want -4", got)
	}
}

func TestFinalIncreasedLMScoreEmptyCandidate(t *testing.T) {
	m := New(ntID, eosID, -50)
	if got := m.FinalIncreasedLMScore(&decoder.Candidate{}); got != 0 {
		t.Fatalf("FinalIncreasedLMScore() on an empty candidate = %v, want 0", got)
	}
}
