// Package lm provides the decoder's default LanguageModel implementation: a
// bigram model scored incrementally so that a candidate's LMProb stays the
// sum of its children's LMProb plus the marginal contributed by this one
// merge, exactly the discipline internal/decoder.LanguageModel documents.
package lm

import "github.com/hierodecode/hierodecode/internal/decoder"

type bigramKey struct{ a, b int }

// NGram is a bigram language model over target word ids. It scores only
// the bigrams newly introduced by a merge: those straddling the join
// between two sub-candidates, or internal to a rule's own literal target
// words, never the bigrams already counted inside a child's own LMProb.
type NGram struct {
	probs map[bigramKey]float64
	floor float64
	ntID  int
	eosID int
}

// New returns an NGram model. ntID is the target vocabulary's nonterminal
// marker id (decoder's tgt_nt_id); eosID is the id scored as the sentence
// terminator in FinalIncreasedLMScore. floor is the log-probability
// assigned to any bigram not explicitly set with Set.
func New(ntID, eosID int, floor float64) *NGram {
	return &NGram{probs: make(map[bigramKey]float64), floor: floor, ntID: ntID, eosID: eosID}
}

// Set records the log-probability of b following a.
func (m *NGram) Set(a, b int, logProb float64) {
	m.probs[bigramKey{a, b}] = logProb
}

func (m *NGram) score(a, b int) float64 {
	if p, ok := m.probs[bigramKey{a, b}]; ok {
		return p
	}
	return m.floor
}

// IncreasedLMScore returns the marginal log-probability contributed by
// cand: the sum of internal bigrams in a fresh lexical/OOV seed's TgtWids,
// or the sum of the bigrams newly formed at a rule's literal-literal,
// literal-nonterminal, and nonterminal-nonterminal junctions for a merged
// candidate.
func (m *NGram) IncreasedLMScore(cand *decoder.Candidate) float64 {
	if cand.ChildX1 == nil {
		return m.scoreRun(cand.TgtWids)
	}
	return m.scoreSplice(cand.AppliedRule.TargetRule.TgtWids, cand.ChildX1, cand.ChildX2)
}

// FinalIncreasedLMScore scores the transition into the sentence terminator,
// applied once to the candidate covering the whole sentence.
func (m *NGram) FinalIncreasedLMScore(cand *decoder.Candidate) float64 {
	if len(cand.TgtWids) == 0 {
		return 0
	}
	last := cand.TgtWids[len(cand.TgtWids)-1]
	return m.score(last, m.eosID)
}

func (m *NGram) scoreRun(wids []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(wids); i++ {
		total += m.score(wids[i], wids[i+1])
	}
	return total
}

// scoreSplice walks a rule's target-side pattern and sums every bigram
// whose left or right member crosses a nonterminal substitution boundary,
// plus any bigram between two consecutive literal words in the pattern
// itself. Those are exactly the bigrams this merge introduces for the
// first time.
func (m *NGram) scoreSplice(tgtWids []int, childX1, childX2 *decoder.Candidate) float64 {
	total := 0.0
	ntSeen := 0
	var prev int
	havePrev := false
	for _, tw := range tgtWids {
		if tw == m.ntID {
			ntSeen++
			child := childX1
			if ntSeen == 2 {
				child = childX2
			}
			first := child.TgtWids[0]
			last := child.TgtWids[len(child.TgtWids)-1]
			if havePrev {
				total += m.score(prev, first)
			}
			prev = last
			havePrev = true
			continue
		}
		if havePrev {
			total += m.score(prev, tw)
		}
		prev = tw
		havePrev = true
	}
	return total
}
