package decoder

// Enumerator holds the per-sentence immutable state the five hierarchical
// rule-pattern families (spec.md §4.1) all need: the source token ids, the
// verb and function-word flags derived from the input's POS tags, and the
// source-side nonterminal marker id the rule table's ids arrays use in
// place of an actual token. It has no exported state; FillHieroRules is the
// only entry point.
type Enumerator struct {
	srcWids   []int
	verbFlags []bool
	fwFlags   []bool
	srcNTID   int
	ruleTable RuleTable
	spanLenMax int
}

// NewEnumerator returns an Enumerator for one sentence's worth of rule
// enumeration.
func NewEnumerator(srcWids []int, verbFlags, fwFlags []bool, srcNTID int, ruleTable RuleTable, spanLenMax int) *Enumerator {
	return &Enumerator{
		srcWids:    srcWids,
		verbFlags:  verbFlags,
		fwFlags:    fwFlags,
		srcNTID:    srcNTID,
		ruleTable:  ruleTable,
		spanLenMax: spanLenMax,
	}
}

// FillHieroRules populates chart.span2rules with every rule instance from
// the AX/XA/XAX, AXB/AXBX/XAXB, AXBXC, and glue families (spec.md
// §4.1.1-5). Lexical seeding (the zero-nonterminal family) is handled
// separately by FillLexicalSeeds, since it writes directly to span2cands
// rather than span2rules.
func (e *Enumerator) FillHieroRules(chart *Chart) {
	e.fillAXFamily(chart)
	e.fillAXBFamily(chart)
	e.fillAXBXCFamily(chart)
	e.fillGlueFamily(chart)
}

func copyInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

// onlyFunctionWords reports whether every token covered by span is a
// function word. An absent span is never "only function words"; it simply
// doesn't contribute to GeneralizeFW.
func (e *Enumerator) onlyFunctionWords(span Span) bool {
	if span.IsAbsent() {
		return false
	}
	for i := span.Beg; i <= span.End(); i++ {
		if !e.fwFlags[i] {
			return false
		}
	}
	return true
}

// fwVerbTerminalFlag reports whether every terminal token immediately
// adjacent to spanX1 or spanX2, within the bounds of the covering span, is
// a verb or a function word (spec.md §4.1, Rule.FWVerbTerminal).
func (e *Enumerator) fwVerbTerminalFlag(span, spanX1, spanX2 Span) bool {
	ok := true
	x1Lhs := spanX1.Beg - 1
	x1Rhs := spanX1.End() + 1
	if x1Lhs >= span.Beg && !e.verbFlags[x1Lhs] && !e.fwFlags[x1Lhs] {
		ok = false
	}
	if x1Rhs <= span.End() && !e.verbFlags[x1Rhs] && !e.fwFlags[x1Rhs] {
		ok = false
	}
	if !spanX2.IsAbsent() {
		x2Lhs := spanX2.Beg - 1
		x2Rhs := spanX2.End() + 1
		if x2Lhs >= span.Beg && !e.verbFlags[x2Lhs] && !e.fwFlags[x2Lhs] {
			ok = false
		}
		if x2Rhs <= span.End() && !e.verbFlags[x2Rhs] && !e.fwFlags[x2Rhs] {
			ok = false
		}
	}
	return ok
}

// addMatchedRules records one Rule instance per ranked target rule matching
// srcIDs over span, with spanX1/spanX2 pre-swapped for RuleSwap targets so
// downstream code never special-cases swap rules beyond that one
// substitution (spec.md §3, the Rule.SpanX1 invariant).
func (e *Enumerator) addMatchedRules(chart *Chart, matched RankedTargetRules, srcIDs []int, span, spanX1, spanX2 Span) {
	fw := e.onlyFunctionWords(spanX1) || e.onlyFunctionWords(spanX2)
	fwVerb := e.fwVerbTerminalFlag(span, spanX1, spanX2)
	ids := copyInts(srcIDs)
	for rank, tr := range matched {
		r := Rule{
			TargetRule:     tr,
			SrcIDs:         ids,
			TgtRuleRank:    rank,
			GeneralizeFW:   fw,
			FWVerbTerminal: fwVerb,
		}
		if tr.Type == RuleSwap {
			r.SpanX1 = spanX2
			r.SpanX2 = spanX1
		} else {
			r.SpanX1 = spanX1
			r.SpanX2 = spanX2
		}
		chart.AddRule(span, r)
	}
}

// prefixMatchFull runs the rule table's PrefixMatch over ids and returns the
// ranked list for the full length of ids, or nil if ids itself isn't a
// complete match.
func (e *Enumerator) prefixMatchFull(ids []int) RankedTargetRules {
	matched := e.ruleTable.PrefixMatch(ids, 0)
	if len(matched) != len(ids) {
		return nil
	}
	return matched[len(matched)-1]
}

// fillAXFamily enumerates the AX, XA, and XAX patterns (spec.md §4.1.2): a
// contiguous terminal run A with an optional nonterminal immediately before
// it, immediately after it, or both.
func (e *Enumerator) fillAXFamily(chart *Chart) {
	n := len(e.srcWids)
	for begA := 0; begA < n; begA++ {
		for lenA := 0; begA+lenA < n && lenA+1 <= e.spanLenMax; lenA++ {
			idsA := e.srcWids[begA : begA+lenA+1]

			if begA != 0 {
				idsXA := make([]int, 0, len(idsA)+1)
				idsXA = append(idsXA, e.srcNTID)
				idsXA = append(idsXA, idsA...)
				if full := e.prefixMatchFull(idsXA); full != nil {
					for lenX := 0; lenX < begA && lenX+lenA+2 <= e.spanLenMax; lenX++ {
						begX := begA - lenX - 1
						span := Span{Beg: begX, LenMinus1: lenX + lenA + 1}
						spanX1 := Span{Beg: begX, LenMinus1: lenX}
						e.addMatchedRules(chart, full, idsXA, span, spanX1, NoSpan)
					}
				}
			}

			if begA+lenA != n-1 {
				idsAX := make([]int, 0, len(idsA)+1)
				idsAX = append(idsAX, idsA...)
				idsAX = append(idsAX, e.srcNTID)
				if full := e.prefixMatchFull(idsAX); full != nil {
					begX := begA + lenA + 1
					for lenX := 0; begX+lenX < n && lenA+lenX+2 <= e.spanLenMax; lenX++ {
						span := Span{Beg: begA, LenMinus1: lenA + lenX + 1}
						spanX1 := Span{Beg: begX, LenMinus1: lenX}
						e.addMatchedRules(chart, full, idsAX, span, spanX1, NoSpan)
					}
				}
			}

			if begA != 0 && begA+lenA != n-1 {
				idsXAX := make([]int, 0, len(idsA)+2)
				idsXAX = append(idsXAX, e.srcNTID)
				idsXAX = append(idsXAX, idsA...)
				idsXAX = append(idsXAX, e.srcNTID)
				if full := e.prefixMatchFull(idsXAX); full != nil {
					begX2 := begA + lenA + 1
					for lenX1 := 0; lenX1 < begA && lenX1+lenA+2 <= e.spanLenMax-1; lenX1++ {
						begX1 := begA - lenX1 - 1
						for lenX2 := 0; begX2+lenX2 < n && lenX1+lenA+lenX2 <= e.spanLenMax-3; lenX2++ {
							span := Span{Beg: begX1, LenMinus1: lenX1 + lenA + lenX2 + 2}
							spanX1 := Span{Beg: begX1, LenMinus1: lenX1}
							spanX2 := Span{Beg: begX2, LenMinus1: lenX2}
							e.addMatchedRules(chart, full, idsXAX, span, spanX1, spanX2)
						}
					}
				}
			}
		}
	}
}

// fillAXBFamily enumerates the AXB, AXBX, and XAXB patterns (spec.md
// §4.1.3): two terminal runs A and B bracketing a nonterminal, with an
// optional second nonterminal before A or after B.
func (e *Enumerator) fillAXBFamily(chart *Chart) {
	n := len(e.srcWids)
	for begAXB := 0; begAXB < n; begAXB++ {
		for lenAXB := 0; begAXB+lenAXB < n && lenAXB+1 <= e.spanLenMax; lenAXB++ {
			endAXB := begAXB + lenAXB
			for begX := begAXB + 1; begX < endAXB; begX++ {
				for lenX := 0; begX+lenX < endAXB; lenX++ {
					idsAXB := make([]int, 0, lenAXB+1)
					idsAXB = append(idsAXB, e.srcWids[begAXB:begX]...)
					idsAXB = append(idsAXB, e.srcNTID)
					idsAXB = append(idsAXB, e.srcWids[begX+lenX+1:endAXB+1]...)

					spanX := Span{Beg: begX, LenMinus1: lenX}

					if begAXB != 0 {
						idsXAXB := make([]int, 0, len(idsAXB)+1)
						idsXAXB = append(idsXAXB, e.srcNTID)
						idsXAXB = append(idsXAXB, idsAXB...)
						if full := e.prefixMatchFull(idsXAXB); full != nil {
							for lenX1 := 0; lenX1 < begAXB && lenX1+lenAXB+2 <= e.spanLenMax; lenX1++ {
								begX1 := begAXB - lenX1 - 1
								span := Span{Beg: begX1, LenMinus1: lenX1 + lenAXB + 1}
								spanX1 := Span{Beg: begX1, LenMinus1: lenX1}
								e.addMatchedRules(chart, full, idsXAXB, span, spanX1, spanX)
							}
						}
					}

					if endAXB != n-1 {
						idsAXBX := make([]int, 0, len(idsAXB)+1)
						idsAXBX = append(idsAXBX, idsAXB...)
						idsAXBX = append(idsAXBX, e.srcNTID)
						if full := e.prefixMatchFull(idsAXBX); full != nil {
							begX2 := endAXB + 1
							for lenX2 := 0; begX2+lenX2 < n && lenAXB+lenX2+2 <= e.spanLenMax; lenX2++ {
								span := Span{Beg: begAXB, LenMinus1: lenAXB + lenX2 + 1}
								spanX2 := Span{Beg: begX2, LenMinus1: lenX2}
								e.addMatchedRules(chart, full, idsAXBX, span, spanX, spanX2)
							}
						}
					}

					if full := e.prefixMatchFull(idsAXB); full != nil {
						span := Span{Beg: begAXB, LenMinus1: lenAXB}
						e.addMatchedRules(chart, full, idsAXB, span, spanX, NoSpan)
					}
				}
			}
		}
	}
}

// fillAXBXCFamily enumerates the AXBXC pattern (spec.md §4.1.4): three
// terminal runs A, B, C with a nonterminal between A and B and another
// between B and C. The covering span needs at least five tokens.
func (e *Enumerator) fillAXBXCFamily(chart *Chart) {
	n := len(e.srcWids)
	for begAXBXC := 0; begAXBXC < n; begAXBXC++ {
		for lenAXBXC := 4; begAXBXC+lenAXBXC < n && lenAXBXC+1 <= e.spanLenMax; lenAXBXC++ {
			endAXBXC := begAXBXC + lenAXBXC
			for begXBX := begAXBXC + 1; begXBX+2 < endAXBXC; begXBX++ {
				for lenXBX := 0; begXBX+lenXBX < endAXBXC; lenXBX++ {
					endXBX := begXBX + lenXBX
					for begB := begXBX + 1; begB < endXBX; begB++ {
						for lenB := endXBX - begB - 1; lenB >= 0; lenB-- {
							idsAXBXC := make([]int, 0, lenAXBXC+1)
							idsAXBXC = append(idsAXBXC, e.srcWids[begAXBXC:begXBX]...)
							idsAXBXC = append(idsAXBXC, e.srcNTID)
							idsAXBXC = append(idsAXBXC, e.srcWids[begB:begB+lenB+1]...)
							idsAXBXC = append(idsAXBXC, e.srcNTID)
							idsAXBXC = append(idsAXBXC, e.srcWids[endXBX+1:endAXBXC+1]...)

							full := e.prefixMatchFull(idsAXBXC)
							if full == nil {
								continue
							}
							span := Span{Beg: begAXBXC, LenMinus1: lenAXBXC}
							spanX1 := Span{Beg: begXBX, LenMinus1: begB - begXBX - 1}
							spanX2 := Span{Beg: begB + lenB + 1, LenMinus1: endXBX - (begB + lenB + 1)}
							e.addMatchedRules(chart, full, idsAXBXC, span, spanX1, spanX2)
						}
					}
				}
			}
		}
	}
}

// fillGlueFamily enumerates the glue rule (spec.md §4.1.5), anchored at
// source position 0: it binds any split of the sentence prefix [0, lenX1X2]
// into two adjacent nonterminal sub-spans, without any SpanLenMax bound.
// The two sub-spans fill the covering span exactly, so FWVerbTerminal takes
// its vacuous value (true).
func (e *Enumerator) fillGlueFamily(chart *Chart) {
	n := len(e.srcWids)
	if n < 2 {
		return
	}
	idsX1X2 := []int{e.srcNTID, e.srcNTID}
	matched := e.ruleTable.PrefixMatch(idsX1X2, 0)
	if len(matched) < 2 || matched[1] == nil || len(matched[1]) == 0 {
		return
	}
	glueRule := matched[1][0]

	for lenX1X2 := 1; lenX1X2 < n; lenX1X2++ {
		span := Span{Beg: 0, LenMinus1: lenX1X2}
		for lenX1 := 0; lenX1 < lenX1X2; lenX1++ {
			spanX1 := Span{Beg: 0, LenMinus1: lenX1}
			spanX2 := Span{Beg: lenX1 + 1, LenMinus1: lenX1X2 - lenX1 - 1}
			r := Rule{
				TargetRule:     glueRule,
				SrcIDs:         idsX1X2,
				SpanX1:         spanX1,
				SpanX2:         spanX2,
				GeneralizeFW:   e.onlyFunctionWords(spanX1) || e.onlyFunctionWords(spanX2),
				FWVerbTerminal: true,
			}
			chart.AddRule(span, r)
		}
	}
}
