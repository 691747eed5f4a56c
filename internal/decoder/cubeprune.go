package decoder

// expandKey identifies a (rule, sub-rank pair) position in the cube-pruning
// search so it is only ever expanded once (spec.md §4.4). It is a 7-tuple:
// the two nonterminal sub-spans, the two sub-candidate ranks used, and the
// rule's rank within the table's ranked list for its source pattern.
type expandKey struct {
	x1Beg, x1Len, x2Beg, x2Len int
	rankX1, rankX2             int
	tgtRuleRank                int
}

func keyOf(c *Candidate) expandKey {
	r := c.AppliedRule
	return expandKey{
		x1Beg: r.SpanX1.Beg, x1Len: r.SpanX1.LenMinus1,
		x2Beg: r.SpanX2.Beg, x2Len: r.SpanX2.LenMinus1,
		rankX1: c.RankX1, rankX2: c.RankX2,
		tgtRuleRank: r.TgtRuleRank,
	}
}

func boolToF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// generateCandWithRule merges the sub-candidates ranked rankX1 (and rankX2,
// for two-nonterminal rules) under rule and returns the resulting
// candidate. It returns ok=false when a referenced sub-beam does not have
// enough ranked candidates yet (spec.md §4.4: "merging fails silently").
func generateCandWithRule(chart *Chart, rule *Rule, rankX1, rankX2 int, lm LanguageModel, w Weight, tgtNTID int) (*Candidate, bool) {
	if rule.HasTwoNonterminals() {
		beamX1 := chart.Beam(rule.SpanX1)
		beamX2 := chart.Beam(rule.SpanX2)
		if beamX1.Size() <= rankX1 || beamX2.Size() <= rankX2 {
			return nil, false
		}
		cx1 := beamX1.At(rankX1)
		cx2 := beamX2.At(rankX2)

		cand := &Candidate{
			AppliedRule:       rule,
			RankX1:            rankX1,
			RankX2:            rankX2,
			ChildX1:           cx1,
			ChildX2:           cx2,
			GeneralizeFWNum:   cx1.GeneralizeFWNum + cx2.GeneralizeFWNum + int(boolToF(rule.GeneralizeFW)),
			FWVerbTerminalNum: cx1.FWVerbTerminalNum + cx2.FWVerbTerminalNum + int(boolToF(rule.FWVerbTerminal)),
			RuleNum:           cx1.RuleNum + cx2.RuleNum + 1,
		}
		if rule.TargetRule.Type == RuleGlue {
			cand.GlueNum = cx1.GlueNum + cx2.GlueNum + 1
		} else {
			cand.GlueNum = cx1.GlueNum + cx2.GlueNum
		}
		cand.TgtWordNum = cx1.TgtWordNum + cx2.TgtWordNum + len(rule.TargetRule.TgtWids) - 2

		ntSeen := 0
		for _, tw := range rule.TargetRule.TgtWids {
			if tw == tgtNTID {
				ntSeen++
				if ntSeen == 1 {
					cand.TgtWids = append(cand.TgtWids, cx1.TgtWids...)
				} else {
					cand.TgtWids = append(cand.TgtWids, cx2.TgtWids...)
				}
			} else {
				cand.TgtWids = append(cand.TgtWids, tw)
			}
		}

		cand.TransProbs = make([]float64, len(cx1.TransProbs))
		for i := range cand.TransProbs {
			cand.TransProbs[i] = cx1.TransProbs[i] + cx2.TransProbs[i] + rule.TargetRule.Probs[i]
		}

		increasedLM := lm.IncreasedLMScore(cand)
		cand.LMProb = cx1.LMProb + cx2.LMProb + increasedLM

		cand.Score = cx1.Score + cx2.Score + rule.TargetRule.Score + w.LM*increasedLM +
			w.RuleNum*1 + w.Len*float64(len(rule.TargetRule.TgtWids)-2) +
			w.FW*boolToF(rule.GeneralizeFW) + w.FWVerb*boolToF(rule.FWVerbTerminal)
		if rule.TargetRule.Type == RuleGlue {
			cand.Score += w.Glue * 1
		}
		return cand, true
	}

	beamX1 := chart.Beam(rule.SpanX1)
	if beamX1.Size() <= rankX1 {
		return nil, false
	}
	cx1 := beamX1.At(rankX1)

	cand := &Candidate{
		AppliedRule:       rule,
		RankX1:            rankX1,
		RankX2:            -1,
		ChildX1:           cx1,
		GeneralizeFWNum:   cx1.GeneralizeFWNum + int(boolToF(rule.GeneralizeFW)),
		FWVerbTerminalNum: cx1.FWVerbTerminalNum + int(boolToF(rule.FWVerbTerminal)),
		RuleNum:           cx1.RuleNum + 1,
		GlueNum:           cx1.GlueNum,
	}
	cand.TgtWordNum = cx1.TgtWordNum + len(rule.TargetRule.TgtWids) - 1

	for _, tw := range rule.TargetRule.TgtWids {
		if tw == tgtNTID {
			cand.TgtWids = append(cand.TgtWids, cx1.TgtWids...)
		} else {
			cand.TgtWids = append(cand.TgtWids, tw)
		}
	}

	cand.TransProbs = make([]float64, len(cx1.TransProbs))
	for i := range cand.TransProbs {
		cand.TransProbs[i] = cx1.TransProbs[i] + rule.TargetRule.Probs[i]
	}

	increasedLM := lm.IncreasedLMScore(cand)
	cand.LMProb = cx1.LMProb + increasedLM

	cand.Score = cx1.Score + rule.TargetRule.Score + w.LM*increasedLM +
		w.RuleNum*1 + w.Len*float64(len(rule.TargetRule.TgtWids)-1) +
		w.FW*boolToF(rule.GeneralizeFW) + w.FWVerb*boolToF(rule.FWVerbTerminal)
	return cand, true
}

// addNeighbours pushes the rank-incremented neighbours of cur onto pq, one
// per bound nonterminal, mirroring the cube-pruning lattice walk in
// spec.md §4.4.
func addNeighbours(chart *Chart, cur *Candidate, pq *CandPQ, lm LanguageModel, w Weight, tgtNTID int) {
	rule := cur.AppliedRule
	if cur.RankX2 != -1 {
		if c, ok := generateCandWithRule(chart, rule, cur.RankX1+1, cur.RankX2, lm, w, tgtNTID); ok {
			pq.Push(c)
		}
		if c, ok := generateCandWithRule(chart, rule, cur.RankX1, cur.RankX2+1, lm, w, tgtNTID); ok {
			pq.Push(c)
		}
		return
	}
	if c, ok := generateCandWithRule(chart, rule, cur.RankX1+1, cur.RankX2, lm, w, tgtNTID); ok {
		pq.Push(c)
	}
}

// generateKBestForSpan runs the cube-pruning search for one span: it seeds
// the priority queue from every applicable rule at rank (0,0), then
// repeatedly pops the best surviving candidate, finalizes it with the
// end-of-sentence LM increment when it covers the whole sentence, expands
// its unexpanded neighbours, and offers it to the span's beam, until
// CubeSize candidates have been popped (whether or not the beam kept them)
// or the queue runs dry (spec.md §4.4).
func generateKBestForSpan(chart *Chart, span Span, lm LanguageModel, w Weight, params Parameters, tgtNTID int, isFinalSpan bool) {
	pq := NewCandPQ()
	for i := range chart.Rules(span) {
		rule := &chart.span2rules[span.Beg][span.LenMinus1][i]
		if c, ok := generateCandWithRule(chart, rule, 0, 0, lm, w, tgtNTID); ok {
			pq.Push(c)
		}
	}

	expanded := make(map[expandKey]struct{})
	beam := chart.Beam(span)
	added := 0
	for added < params.CubeSize && !pq.Empty() {
		best := pq.Pop()
		if isFinalSpan {
			inc := lm.FinalIncreasedLMScore(best)
			best.LMProb += inc
			best.Score += w.LM * inc
		}
		k := keyOf(best)
		if _, seen := expanded[k]; !seen {
			addNeighbours(chart, best, pq, lm, w, tgtNTID)
			expanded[k] = struct{}{}
		}
		beam.Add(best, params.BeamSize)
		added++
	}
}
