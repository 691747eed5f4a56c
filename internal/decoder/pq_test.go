package decoder

import "testing"

func TestCandPQPopsInDescendingScoreOrder(t *testing.T) {
	pq := NewCandPQ()
	for _, score := range []float64{2, 5, 1, 4, 3} {
		pq.Push(&Candidate{Score: score})
	}
	var got []float64
	for !pq.Empty() {
		got = append(got, pq.Pop().Score)
	}
	want := []float64{5, 4, 3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("popped %d candidates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestCandPQEmpty(t *testing.T) {
	pq := NewCandPQ()
	if !pq.Empty() {
		t.Fatalf("Empty() on a fresh queue = false, want true")
	}
}
