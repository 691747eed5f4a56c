package decoder

// Chart is the triangular table of per-span beams and per-span rule lists
// that the decoder fills in during a decode (spec.md §3). Both tables are
// allocated with N*(N+1)/2 entries for a sentence of length N.
type Chart struct {
	// span2cands[beg][lenMinus1] is the beam for the span starting at beg
	// with length lenMinus1+1.
	span2cands [][]*CandBeam
	// span2rules[beg][lenMinus1] is the list of rule instances applicable
	// to that span.
	span2rules [][][]Rule
}

// NewChart allocates a triangular chart for a sentence of length n.
func NewChart(n int) *Chart {
	c := &Chart{
		span2cands: make([][]*CandBeam, n),
		span2rules: make([][][]Rule, n),
	}
	for beg := 0; beg < n; beg++ {
		c.span2cands[beg] = make([]*CandBeam, n-beg)
		c.span2rules[beg] = make([][]Rule, n-beg)
		for l := 0; l < n-beg; l++ {
			c.span2cands[beg][l] = NewCandBeam()
		}
	}
	return c
}

// Beam returns the beam for the given span.
func (c *Chart) Beam(s Span) *CandBeam {
	return c.span2cands[s.Beg][s.LenMinus1]
}

// Rules returns the rule instances applicable to the given span.
func (c *Chart) Rules(s Span) []Rule {
	return c.span2rules[s.Beg][s.LenMinus1]
}

// AddRule appends a rule instance to the span it covers.
func (c *Chart) AddRule(s Span, r Rule) {
	c.span2rules[s.Beg][s.LenMinus1] = append(c.span2rules[s.Beg][s.LenMinus1], r)
}

// SentenceLen returns N, the number of tokens the chart was built for.
func (c *Chart) SentenceLen() int {
	return len(c.span2cands)
}
