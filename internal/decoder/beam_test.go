package decoder

import "testing"

func TestCandBeamAddEvictsWorst(t *testing.T) {
	b := NewCandBeam()
	for i, score := range []float64{1, 3, 2} {
		b.Add(&Candidate{TgtWids: []int{i}, Score: score}, 2)
	}
	if b.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", b.Size())
	}
	b.Sort()
	if got := b.Top().Score; got != 3 {
		t.Fatalf("Top().Score = %v, want 3", got)
	}
	if b.At(1).Score != 2 {
		t.Fatalf("At(1).Score = %v, want 2 (score 1 candidate should have been evicted)", b.At(1).Score)
	}
}

func TestCandBeamDedupKeepsBetterScore(t *testing.T) {
	b := NewCandBeam()
	b.Add(&Candidate{TgtWids: []int{1, 2}, Score: 1}, 5)
	b.Add(&Candidate{TgtWids: []int{1, 2}, Score: 5}, 5)
	b.Add(&Candidate{TgtWids: []int{1, 2}, Score: 2}, 5)
	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (duplicate target surface)", b.Size())
	}
	if b.Top().Score != 5 {
		t.Fatalf("Top().Score = %v, want 5 (best-scoring duplicate should survive)", b.Top().Score)
	}
}

func TestCandBeamTopEmpty(t *testing.T) {
	b := NewCandBeam()
	if b.Top() != nil {
		t.Fatalf("Top() on empty beam = %v, want nil", b.Top())
	}
	if b.At(0) != nil {
		t.Fatalf("At(0) on empty beam = %v, want nil", b.At(0))
	}
}

func TestCandBeamSortStableOnTies(t *testing.T) {
	b := NewCandBeam()
	first := &Candidate{TgtWids: []int{1}, Score: 1}
	second := &Candidate{TgtWids: []int{2}, Score: 1}
	b.Add(first, 5)
	b.Add(second, 5)
	b.Sort()
	if b.At(0) != first || b.At(1) != second {
		t.Fatalf("Sort() did not preserve admission order on a tie")
	}
}
