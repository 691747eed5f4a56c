package decoder

// Vocab maps between surface words and the dense integer ids the decoder
// operates on internally. Implementations own the id space for the whole
// process lifetime; the decoder only ever borrows ids and words from them.
type Vocab interface {
	// GetID returns the id for word, allocating or returning an "unknown"
	// sentinel id depending on the implementation. OOV handling beyond id
	// lookup is a decoder concern, not a Vocab concern.
	GetID(word string) int
	// GetWord returns the surface form for id.
	GetWord(id int) string
}

// RankedTargetRules is a rule-table's best-first ordered list of target
// rules matching one source-side pattern. Rank 0 is the most promising
// rule under the table's own criterion.
type RankedTargetRules []*TargetRule

// RuleTable is the trie-like rule index the decoder queries while
// enumerating rule instances. Its construction, storage format, and
// loading are out of scope for the decoder; only PrefixMatch matters here.
type RuleTable interface {
	// PrefixMatch returns, for every prefix length k of ids[start:] (1-based
	// up to len(ids)-start), either the ranked rule list matching that exact
	// prefix or nil when no rule matches. The returned slice has exactly
	// len(ids)-start elements. Lexical seeding reads every element; the
	// hierarchical rule enumeration only inspects the last element, and only
	// when it is non-nil and the returned slice is the full requested length.
	PrefixMatch(ids []int, start int) []RankedTargetRules
}

// LanguageModel scores target word sequences. The decoder credits LM score
// incrementally: IncreasedLMScore is the marginal log-probability
// contributed by joining a candidate's children (or seeding a fresh lexical
// candidate), and FinalIncreasedLMScore is the end-of-sentence
// finalization applied once, to the candidate covering the whole sentence.
type LanguageModel interface {
	IncreasedLMScore(cand *Candidate) float64
	FinalIncreasedLMScore(cand *Candidate) float64
}

// FunctionWordSet reports whether a source token id is a function word.
type FunctionWordSet interface {
	Contains(srcID int) bool
}

// Models bundles the external collaborators a Decoder is constructed with.
// None of these are owned by the decoder; they must outlive it.
type Models struct {
	SrcVocab      Vocab
	TgtVocab      Vocab
	RuleTable     RuleTable
	LM            LanguageModel
	FunctionWords FunctionWordSet
}
