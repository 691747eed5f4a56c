package lm

import (
	"strings"
	"testing"
)

type stubVocab struct{ ids map[string]int }

func (v stubVocab) GetID(word string) int { return v.ids[word] }
func (v stubVocab) GetWord(id int) string { return "" }

func TestLoadTextParsesBigramsAndSkipsComments(t *testing.T) {
	vocab := stubVocab{ids: map[string]int{"[X][X]": 0, "<eos>": 1, "a": 2, "b": 3}}
	r := strings.NewReader("# comment\na b -1.5\n\nb <eos> -0.5\n")
	m, err := LoadText(r, vocab, -99)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if got := m.score(2, 3); got != -1.5 {
		t.Fatalf("score(a,b) = %v, want -1.5", got)
	}
	if got := m.score(3, 1); got != -0.5 {
		t.Fatalf("score(b,<eos>) = %v, want -0.5", got)
	}
	if got := m.score(2, 2); got != -99 {
		t.Fatalf("score of an unseen pair = %v, want the floor -99", got)
	}
}

func TestLoadTextRejectsMalformedLine(t *testing.T) {
	vocab := stubVocab{ids: map[string]int{}}
	_, err := LoadText(strings.NewReader("a b\n"), vocab, -1)
	if err == nil {
		t.Fatal("LoadText accepted a line with the wrong field count")
	}
}
