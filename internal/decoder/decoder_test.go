package decoder

import "testing"

// fakeVocab is a fixed bidirectional vocabulary for decoder end-to-end
// tests, where every id needs to be known ahead of time to build a
// matching fakeRuleTable.
type fakeVocab struct {
	word2id map[string]int
	id2word map[int]string
}

func newFakeVocab(words ...string) *fakeVocab {
	v := &fakeVocab{word2id: make(map[string]int), id2word: make(map[int]string)}
	for i, w := range words {
		v.word2id[w] = i
		v.id2word[i] = w
	}
	return v
}

func (v *fakeVocab) GetID(word string) int  { return v.word2id[word] }
func (v *fakeVocab) GetWord(id int) string { return v.id2word[id] }

// TestTranslateSentenceGlueJoinsTwoLexicalSeeds exercises the full pipeline
// from NewDecoder through TranslateSentence for a two-token sentence with
// no hierarchical rule beyond glue: tokenize, seed both one-token spans
// directly, enumerate the glue rule over the whole sentence, cube-prune
// it into a single merged candidate, and render the result.
func TestTranslateSentenceGlueJoinsTwoLexicalSeeds(t *testing.T) {
	srcVocab := newFakeVocab("[X][X]", "hello", "world")
	tgtVocab := newFakeVocab("[X][X]", "hola", "mundo")

	rt := newFakeRuleTable()
	rt.put([]int{srcVocab.GetID("hello")}, RankedTargetRules{
		{TgtWids: []int{tgtVocab.GetID("hola")}, Probs: []float64{0}, Type: RuleLexical, WordNum: 1},
	})
	rt.put([]int{srcVocab.GetID("world")}, RankedTargetRules{
		{TgtWids: []int{tgtVocab.GetID("mundo")}, Probs: []float64{0}, Type: RuleLexical, WordNum: 1},
	})
	ntID := srcVocab.GetID("[X][X]")
	rt.put([]int{ntID, ntID}, RankedTargetRules{
		{TgtWids: []int{tgtVocab.GetID("[X][X]"), tgtVocab.GetID("[X][X]")}, Probs: []float64{0}, Type: RuleGlue, WordNum: 0},
	})

	models := Models{SrcVocab: srcVocab, TgtVocab: tgtVocab, RuleTable: rt, LM: fakeLM{}}
	params := DefaultParameters()
	weight := DefaultWeight(params.ProbNum)

	d, err := NewDecoder(models, params, weight, "hello#N world#N")
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	got := d.TranslateSentence(t.Context())
	if got != "hola mundo" {
		t.Fatalf("TranslateSentence() = %q, want %q", got, "hola mundo")
	}
}

func TestTranslateSentenceSingleTokenNeedsNoGlue(t *testing.T) {
	srcVocab := newFakeVocab("[X][X]", "hello")
	tgtVocab := newFakeVocab("[X][X]", "hola")

	rt := newFakeRuleTable()
	rt.put([]int{srcVocab.GetID("hello")}, RankedTargetRules{
		{TgtWids: []int{tgtVocab.GetID("hola")}, Probs: []float64{0}, Type: RuleLexical, WordNum: 1},
	})

	models := Models{SrcVocab: srcVocab, TgtVocab: tgtVocab, RuleTable: rt, LM: fakeLM{}}
	params := DefaultParameters()
	weight := DefaultWeight(params.ProbNum)

	d, err := NewDecoder(models, params, weight, "hello#N")
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if got := d.TranslateSentence(t.Context()); got != "hola" {
		t.Fatalf("TranslateSentence() = %q, want %q", got, "hola")
	}
}

func TestTranslateSentenceOOVPassthrough(t *testing.T) {
	srcVocab := newFakeVocab("[X][X]", "zorblax")
	tgtVocab := newFakeVocab("[X][X]")

	rt := newFakeRuleTable()
	models := Models{SrcVocab: srcVocab, TgtVocab: tgtVocab, RuleTable: rt, LM: fakeLM{}}
	params := DefaultParameters()
	weight := DefaultWeight(params.ProbNum)

	d, err := NewDecoder(models, params, weight, "zorblax#N")
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if got := d.TranslateSentence(t.Context()); got != "zorblax" {
		t.Fatalf("TranslateSentence() = %q, want %q (OOV tokens render via the source vocabulary)", got, "zorblax")
	}
}

func TestNewDecoderRejectsTokenWithoutTag(t *testing.T) {
	srcVocab := newFakeVocab("[X][X]")
	tgtVocab := newFakeVocab("[X][X]")
	models := Models{SrcVocab: srcVocab, TgtVocab: tgtVocab, RuleTable: newFakeRuleTable(), LM: fakeLM{}}
	params := DefaultParameters()
	weight := DefaultWeight(params.ProbNum)

	if _, err := NewDecoder(models, params, weight, "hello"); err == nil {
		t.Fatal("NewDecoder did not reject a token missing its #tag suffix")
	}
}
