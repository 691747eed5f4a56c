package decoder

import (
	"sort"
	"strconv"
	"strings"
)

// CandBeam is a bounded, score-ranked collection of Candidates for one
// span, with duplicate suppression on the produced target surface
// (spec.md §3). A CandBeam is written by exactly one goroutine for the
// lifetime of a decode (the chart driver guarantees this), so it carries
// no internal locking.
type CandBeam struct {
	cands   []*Candidate
	byWords map[string]int // target-surface fingerprint -> index into cands
	sorted  bool
}

// NewCandBeam returns an empty beam.
func NewCandBeam() *CandBeam {
	return &CandBeam{byWords: make(map[string]int)}
}

// surfaceKey fingerprints a candidate's target word-id sequence for
// duplicate suppression. It is cheap relative to re-rendering the surface
// string and distinguishes OOV sentinels (negative ids) correctly since
// they are included verbatim.
func surfaceKey(wids []int) string {
	var b strings.Builder
	for _, w := range wids {
		b.WriteString(strconv.Itoa(w))
		b.WriteByte(',')
	}
	return b.String()
}

// Add offers cand to the beam, enforcing capacity and the target-surface
// layer of duplicate suppression (the other layer, the expansion set, lives
// in the cube-pruning search): if a candidate with an identical target
// surface is already present, the better-scoring one wins; otherwise the
// beam accepts up to capacity candidates and evicts the worst-scoring one
// on overflow.
func (b *CandBeam) Add(cand *Candidate, capacity int) {
	b.sorted = false
	key := surfaceKey(cand.TgtWids)
	if idx, ok := b.byWords[key]; ok {
		if cand.Score > b.cands[idx].Score {
			b.cands[idx] = cand
		}
		return
	}
	if len(b.cands) < capacity {
		b.cands = append(b.cands, cand)
		b.byWords[key] = len(b.cands) - 1
		return
	}
	worst := 0
	for i := 1; i < len(b.cands); i++ {
		if b.cands[i].Score < b.cands[worst].Score {
			worst = i
		}
	}
	if cand.Score <= b.cands[worst].Score {
		return
	}
	delete(b.byWords, surfaceKey(b.cands[worst].TgtWids))
	b.cands[worst] = cand
	b.byWords[key] = worst
}

// Sort orders the beam by descending score, breaking ties by each
// candidate's current slot in the beam (admission order, except that a
// candidate replacing an evicted or duplicate one takes over its slot), so
// that results are reproducible independent of map iteration order
// elsewhere in the decoder.
func (b *CandBeam) Sort() {
	if b.sorted {
		return
	}
	sort.SliceStable(b.cands, func(i, j int) bool {
		return b.cands[i].Score > b.cands[j].Score
	})
	for i, c := range b.cands {
		b.byWords[surfaceKey(c.TgtWids)] = i
	}
	b.sorted = true
}

// Top returns the best candidate, or nil if the beam is empty.
func (b *CandBeam) Top() *Candidate {
	if len(b.cands) == 0 {
		return nil
	}
	return b.cands[0]
}

// At returns the candidate ranked i (0-based) after Sort, or nil if i is
// out of range.
func (b *CandBeam) At(i int) *Candidate {
	if i < 0 || i >= len(b.cands) {
		return nil
	}
	return b.cands[i]
}

// Size returns the number of candidates currently in the beam.
func (b *CandBeam) Size() int {
	return len(b.cands)
}
