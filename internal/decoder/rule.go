package decoder

// RuleType classifies a TargetRule by its nonterminal shape (spec.md §3).
// A rule with exactly one nonterminal marker in its target side is NOT a
// distinct enum value. The decoder detects that case by counting markers
// in TgtWids, matching the original model where the table only ever
// distinguishes lexical (RuleLexical, 0 or 1 NT), monotone/swap/glue (2 NT).
type RuleType int

const (
	// RuleLexical covers both pure terminal phrases and single-nonterminal
	// rules; which of the two applies is determined by scanning TgtWids.
	RuleLexical RuleType = 1
	// RuleMonotone rules have two nonterminals in source order.
	RuleMonotone RuleType = 2
	// RuleSwap rules have two nonterminals in swapped order relative to the
	// source side.
	RuleSwap RuleType = 3
	// RuleGlue is the fallback monotone binary rule with special feature
	// accounting (spec.md §4.6).
	RuleGlue RuleType = 4
)

// TargetRule is owned by the RuleTable for the full process lifetime; the
// decoder only ever borrows pointers to it.
type TargetRule struct {
	// TgtWids is the target token id sequence, containing 0, 1, or 2
	// occurrences of the target nonterminal marker id.
	TgtWids []int
	// Probs holds ProbNum translation-model sub-scores.
	Probs []float64
	// Score is the rule's precomputed weighted feature contribution
	// (everything except the LM and structural counts, which the decoder
	// adds as candidates are built).
	Score float64
	// Type classifies the rule's nonterminal shape.
	Type RuleType
	// WordNum is the number of target tokens excluding nonterminal markers.
	WordNum int
}

// NonterminalCount returns how many nonterminal markers occur in TgtWids.
func (r *TargetRule) NonterminalCount(tgtNTID int) int {
	n := 0
	for _, w := range r.TgtWids {
		if w == tgtNTID {
			n++
		}
	}
	return n
}

// Rule is a concrete instance of a TargetRule applied at a specific source
// position: the source-side realization (terminals plus nonterminal
// placeholders), the two nonterminal sub-spans (SpanX2 absent when the rule
// has at most one nonterminal), and the two derived boolean features.
//
// Invariant: when TargetRule.Type == RuleSwap, SpanX1 always corresponds to
// the LEFTMOST target-side nonterminal. The enumerator stores the spans
// pre-swapped so cube pruning and surface assembly never special-case swap
// rules beyond this one substitution.
type Rule struct {
	TargetRule *TargetRule
	SrcIDs     []int
	SpanX1     Span
	SpanX2     Span
	// TgtRuleRank is this rule's 0-based index within the rule-table's
	// ranked list for its source pattern.
	TgtRuleRank int
	// GeneralizeFW is set when at least one non-absent nonterminal sub-span
	// consists only of function-word tokens.
	GeneralizeFW bool
	// FWVerbTerminal is set when every terminal token immediately adjacent
	// to either nonterminal sub-span, within the covering span, is a verb
	// or a function word (vacuously true when no such terminal exists).
	FWVerbTerminal bool
}

// HasTwoNonterminals reports whether this rule instance binds two
// sub-spans. Glue, monotone, and swap rules always do; lexical-family rules
// do only when their TargetRule carries two NT markers.
func (r *Rule) HasTwoNonterminals() bool {
	return !r.SpanX2.IsAbsent()
}
