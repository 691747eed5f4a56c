package decoder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Decoder owns one sentence's chart and drives it from tokenization through
// a complete translation (spec.md §5, the "chart driver"). It is built
// once per input sentence and discarded afterward; none of its state is
// safe to reuse across sentences.
type Decoder struct {
	models Models
	params Parameters
	weight Weight

	srcWids []int
	srcNTID int
	tgtNTID int

	chart    *Chart
	observer Observer
}

// TuneInfo is one n-best entry's feature breakdown, shaped for tuning
// pipelines that expect a flat feature vector per candidate (spec.md §5).
type TuneInfo struct {
	SentenceID    int
	Translation   string
	FeatureValues []float64
	TotalScore    float64
}

// NewDecoder tokenizes inputSentence (space-separated "surface#tag" tokens),
// derives the verb and function-word flags every rule-pattern family needs,
// and fully populates the chart's rule lists and lexical seeds, everything
// except the cube-pruning search itself, which TranslateSentence runs.
func NewDecoder(models Models, params Parameters, weight Weight, inputSentence string) (*Decoder, error) {
	srcWids, verbFlags, fwFlags, err := tokenize(inputSentence, models.SrcVocab, models.FunctionWords)
	if err != nil {
		return nil, err
	}

	srcNTID := models.SrcVocab.GetID("[X][X]")
	tgtNTID := models.TgtVocab.GetID("[X][X]")

	chart := NewChart(len(srcWids))
	FillLexicalSeeds(chart, srcWids, models.RuleTable, models.LM, weight, params)
	NewEnumerator(srcWids, verbFlags, fwFlags, srcNTID, models.RuleTable, params.SpanLenMax).FillHieroRules(chart)

	return &Decoder{
		models:   models,
		params:   params,
		weight:   weight,
		srcWids:  srcWids,
		srcNTID:  srcNTID,
		tgtNTID:  tgtNTID,
		chart:    chart,
		observer: NoopObserver{},
	}, nil
}

// SetObserver installs o to receive progress notifications for subsequent
// calls to TranslateSentence. Passing nil restores NoopObserver.
func (d *Decoder) SetObserver(o Observer) {
	if o == nil {
		o = NoopObserver{}
	}
	d.observer = o
}

// tokenize splits input into "surface#tag" tokens, resolves each surface
// form through vocab, and derives the verb and function-word flag for each
// position (spec.md §2).
func tokenize(input string, vocab Vocab, fw FunctionWordSet) (wids []int, verbFlags, fwFlags []bool, err error) {
	for _, tok := range strings.Fields(input) {
		word, tag, found := strings.Cut(tok, "#")
		if !found {
			return nil, nil, nil, fmt.Errorf("decoder: token %q is missing a #tag suffix", tok)
		}
		id := vocab.GetID(word)
		wids = append(wids, id)
		verbFlags = append(verbFlags, len(tag) > 0 && tag[0] == 'V')
		fwFlags = append(fwFlags, fw != nil && fw.Contains(id))
	}
	return wids, verbFlags, fwFlags, nil
}

// TranslateSentence runs the sentence's cube-pruning search one span
// length at a time. Positions within a length run concurrently across
// Parameters.SpanThreadNum workers, but no length starts before every
// position of every shorter length has finished and been sorted, and it
// returns the single best translation's rendered surface (spec.md §5).
func (d *Decoder) TranslateSentence(ctx context.Context) string {
	n := d.chart.SentenceLen()
	if n == 0 {
		return ""
	}
	for beg := 0; beg < n; beg++ {
		d.chart.Beam(Span{Beg: beg, LenMinus1: 0}).Sort()
	}
	limit := d.params.SpanThreadNum
	if limit == 0 {
		limit = 1
	}
	for length := 1; length < n; length++ {
		positions := n - length
		isFinal := length == n-1
		d.observer.SpanPassStarted(length, positions)
		start := time.Now()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		for beg := 0; beg < positions; beg++ {
			span := Span{Beg: beg, LenMinus1: length}
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				generateKBestForSpan(d.chart, span, d.models.LM, d.weight, d.params, d.tgtNTID, isFinal)
				d.chart.Beam(span).Sort()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return ""
		}
		d.observer.SpanPassCompleted(length, time.Since(start))
	}

	top := d.chart.Beam(Span{Beg: 0, LenMinus1: n - 1}).Top()
	if top == nil {
		return ""
	}
	return wordsToStr(top.TgtWids, d.models.SrcVocab, d.models.TgtVocab, d.params.DropOOV)
}

// GetTuneInfo returns up to Parameters.NBestNum entries from the whole-
// sentence beam, each carrying the raw feature values a tuning pipeline
// recombines independently of the decoder's own weighted score (spec.md
// §5, testable property 3's companion surface).
func (d *Decoder) GetTuneInfo(sentenceID int) []TuneInfo {
	n := d.chart.SentenceLen()
	if n == 0 {
		return nil
	}
	beam := d.chart.Beam(Span{Beg: 0, LenMinus1: n - 1})
	count := beam.Size()
	if count > d.params.NBestNum {
		count = d.params.NBestNum
	}
	out := make([]TuneInfo, 0, count)
	for i := 0; i < count; i++ {
		c := beam.At(i)
		fv := make([]float64, 0, len(c.TransProbs)+5)
		fv = append(fv, c.TransProbs...)
		fv = append(fv, c.LMProb, float64(c.TgtWordNum), float64(c.RuleNum),
			float64(c.GlueNum), float64(c.GeneralizeFWNum), float64(c.FWVerbTerminalNum))
		out = append(out, TuneInfo{
			SentenceID:    sentenceID,
			Translation:   wordsToStr(c.TgtWids, d.models.SrcVocab, d.models.TgtVocab, 0),
			FeatureValues: fv,
			TotalScore:    c.Score,
		})
	}
	return out
}

// GetAppliedRules renders the best candidate's full derivation as a flat
// sequence of strings: rule descriptions interleaved with " ( " / " ) "
// bracketing markers, followed by a " ||||| " separator and the source
// sentence (spec.md §5). It returns nil if the whole-sentence beam is
// empty.
func (d *Decoder) GetAppliedRules(sentenceID int) []string {
	n := d.chart.SentenceLen()
	if n == 0 {
		return nil
	}
	beam := d.chart.Beam(Span{Beg: 0, LenMinus1: n - 1})
	if beam.Size() == 0 {
		return nil
	}
	var rules []string
	d.dumpRules(&rules, beam.Top())
	rules = append(rules, " ||||| ")

	var src strings.Builder
	for _, wid := range d.srcWids {
		src.WriteString(d.models.SrcVocab.GetWord(wid))
		src.WriteByte(' ')
	}
	rules = append(rules, src.String())
	return rules
}

// dumpRules walks cand's derivation depth-first, appending one rule
// description per candidate visited. A swap rule (RuleSwap) stores the
// source side's right nonterminal as SpanX1/ChildX1, so here its target-side
// labels and its children are swapped back: each target slot is labelled
// with the source nonterminal (X1_ or X2_) that fills it, and the children
// are visited in source order.
func (d *Decoder) dumpRules(out *[]string, cand *Candidate) {
	*out = append(*out, " ")
	if cand.ChildX1 != nil {
		*out = append(*out, " ( ")
	}

	srcNTs := [2]string{"X1_", "X2_"}
	tgtNTs := [2]string{"X1_", "X2_"}
	children := [2]*Candidate{cand.ChildX1, cand.ChildX2}
	ar := cand.AppliedRule
	if ar != nil && ar.TargetRule != nil && ar.TargetRule.Type == RuleSwap {
		tgtNTs[0], tgtNTs[1] = tgtNTs[1], tgtNTs[0]
		children[0], children[1] = children[1], children[0]
	}

	var rule strings.Builder
	if ar != nil {
		ntNum := 0
		for _, srcWid := range ar.SrcIDs {
			if srcWid == d.srcNTID {
				rule.WriteString(srcNTs[ntNum])
				ntNum++
			} else {
				rule.WriteString(d.models.SrcVocab.GetWord(srcWid))
				rule.WriteByte('_')
			}
		}
	}
	rule.WriteString("|||_")
	if ar == nil || ar.TargetRule == nil {
		rule.WriteString("NULL_")
	} else {
		ntNum := 0
		for _, tgtWid := range ar.TargetRule.TgtWids {
			if tgtWid == d.tgtNTID {
				rule.WriteString(tgtNTs[ntNum])
				ntNum++
			} else {
				rule.WriteString(d.models.TgtVocab.GetWord(tgtWid))
				rule.WriteByte('_')
			}
		}
	}
	fw, fwVerb := 0, 0
	if ar != nil {
		if ar.GeneralizeFW {
			fw = 1
		}
		if ar.FWVerbTerminal {
			fwVerb = 1
		}
	}
	rule.WriteString(strconv.Itoa(fw))
	rule.WriteByte('_')
	rule.WriteString(strconv.Itoa(fwVerb))
	rule.WriteByte('_')
	s := rule.String()
	*out = append(*out, s[:len(s)-1])

	if children[0] != nil {
		d.dumpRules(out, children[0])
	}
	if children[1] != nil {
		d.dumpRules(out, children[1])
	}
	if cand.ChildX1 != nil {
		*out = append(*out, " ) ")
	}
}

// wordsToStr renders a target word-id sequence as a surface string,
// resolving OOV sentinels (negative ids) back through srcVocab and
// dropping them entirely when dropOOV is nonzero (spec.md §4.3).
func wordsToStr(wids []int, srcVocab, tgtVocab Vocab, dropOOV int) string {
	var b strings.Builder
	for _, wid := range wids {
		if wid >= 0 {
			b.WriteString(tgtVocab.GetWord(wid))
			b.WriteByte(' ')
		} else if dropOOV == 0 {
			b.WriteString(srcVocab.GetWord(-wid))
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
