package decoder

// Candidate is an immutable-once-accepted record of a partial translation
// covering one span, with its score breakdown and back-pointers to the
// sub-candidates it was built from (spec.md §3).
//
// Candidates are allocated one at a time during lexical seeding and
// cube-pruning search; ownership passes to a CandBeam on acceptance, or the
// Candidate is simply dropped. There is no manual free() to mirror from the
// original C++, only the back-pointer discipline that keeps the graph
// acyclic: a child is always in a strictly shorter span than its parent.
type Candidate struct {
	TgtWids []int

	TransProbs []float64
	LMProb     float64

	TgtWordNum        int
	RuleNum           int
	GlueNum           int
	GeneralizeFWNum   int
	FWVerbTerminalNum int

	Score float64

	RankX1 int
	RankX2 int

	ChildX1 *Candidate
	ChildX2 *Candidate

	AppliedRule *Rule
}

// recomputeScore returns the closed-form score defined in spec.md §4.6,
// independent of how Score was accumulated. Nothing in the package calls
// it; the decoder's own scoring accumulates Score incrementally.
func recomputeScore(c *Candidate, w Weight) float64 {
	score := w.LM*c.LMProb +
		w.Len*float64(c.TgtWordNum) +
		w.RuleNum*float64(c.RuleNum) +
		w.Glue*float64(c.GlueNum) +
		w.FW*float64(c.GeneralizeFWNum) +
		w.FWVerb*float64(c.FWVerbTerminalNum)
	for i, p := range c.TransProbs {
		if i < len(w.TransWeights) {
			score += w.TransWeights[i] * p
		}
	}
	return score
}
