package decoder

// FillLexicalSeeds populates the beam of every span covered by a pure
// terminal (zero-nonterterminal) rule directly, without going through the
// cube-pruning search: there is nothing to merge, so generating the
// candidate is the whole job (spec.md §4.3). For a single source token with
// no matching rule at all it synthesizes an out-of-vocabulary candidate
// instead (spec.md §9 OQ2); no rule table in the pack needs this for spans
// longer than one token, since every sentence trivially decomposes into
// single tokens.
func FillLexicalSeeds(chart *Chart, srcWids []int, ruleTable RuleTable, lm LanguageModel, w Weight, params Parameters) {
	n := len(srcWids)
	for beg := 0; beg < n; beg++ {
		matched := ruleTable.PrefixMatch(srcWids, beg)
		for lenMinus1, ranked := range matched {
			if lenMinus1 >= params.SpanLenMax {
				break
			}
			span := Span{Beg: beg, LenMinus1: lenMinus1}
			if ranked == nil {
				if lenMinus1 == 0 {
					seedOOVCandidate(chart, beg, srcWids[beg], lm, w, params)
				}
				continue
			}
			srcIDs := append([]int{}, srcWids[beg:beg+lenMinus1+1]...)
			for rank, tr := range ranked {
				seedPhraseCandidate(chart, span, srcIDs, tr, rank, lm, w, params.BeamSize)
			}
		}
	}
}

// seedOOVCandidate builds the one-candidate beam for a source token with no
// matching rule at all: it maps to itself, rendered as a negative target id
// (spec.md §4.3), with every translation sub-score floored at
// Parameters.OOVLogProb. It counts as one applied rule, matching the
// decoder-wide invariant that every candidate's RuleNum is at least 1.
func seedOOVCandidate(chart *Chart, beg, srcID int, lm LanguageModel, w Weight, params Parameters) {
	cand := &Candidate{
		TgtWids:    []int{-srcID},
		TransProbs: make([]float64, params.ProbNum),
		TgtWordNum: 1,
		RuleNum:    1,
		AppliedRule: &Rule{
			SrcIDs: []int{srcID},
			SpanX1: NoSpan,
			SpanX2: NoSpan,
		},
	}
	for i := range cand.TransProbs {
		cand.TransProbs[i] = params.OOVLogProb
	}
	cand.LMProb = lm.IncreasedLMScore(cand)
	cand.Score = w.LM*cand.LMProb + w.Len*float64(cand.TgtWordNum) + w.RuleNum*float64(cand.RuleNum)
	for i, p := range cand.TransProbs {
		if i < len(w.TransWeights) {
			cand.Score += w.TransWeights[i] * p
		}
	}
	chart.Beam(Span{Beg: beg, LenMinus1: 0}).Add(cand, params.BeamSize)
}

// seedPhraseCandidate builds the candidate for one ranked pure-terminal
// target rule matching the source tokens covering span.
func seedPhraseCandidate(chart *Chart, span Span, srcIDs []int, tr *TargetRule, rank int, lm LanguageModel, w Weight, beamSize int) {
	cand := &Candidate{
		TgtWids:    append([]int{}, tr.TgtWids...),
		TransProbs: append([]float64{}, tr.Probs...),
		TgtWordNum: tr.WordNum,
		RuleNum:    1,
		AppliedRule: &Rule{
			TargetRule:  tr,
			SrcIDs:      srcIDs,
			SpanX1:      NoSpan,
			SpanX2:      NoSpan,
			TgtRuleRank: rank,
		},
	}
	cand.LMProb = lm.IncreasedLMScore(cand)
	cand.Score = tr.Score + w.LM*cand.LMProb + w.Len*float64(cand.TgtWordNum) + w.RuleNum*float64(cand.RuleNum)
	chart.Beam(span).Add(cand, beamSize)
}
