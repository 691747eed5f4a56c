package ruletable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierodecode/hierodecode/internal/vocab"
)

func vocabWith(words ...string) *vocab.Memory {
	v := vocab.NewMemory()
	v.GetID("[X][X]")
	for _, w := range words {
		v.GetID(w)
	}
	return v
}

func TestLoadTextGroupsRulesBySourcePatternInFileOrder(t *testing.T) {
	src := vocabWith("casa", "grande")
	tgt := vocabWith("house", "big")

	text := strings.Join([]string{
		"casa ||| house ||| 0.9 ||| 1.0 ||| 1",
		"casa ||| the house ||| 0.1 ||| 0.5 ||| 1",
		"casa grande ||| big house ||| 1.0 ||| 2.0 ||| 1",
	}, "\n")

	m, err := LoadText(strings.NewReader(text), src, tgt)
	require.NoError(t, err)

	got := m.PrefixMatch([]int{src.GetID("casa")}, 0)
	require.Len(t, got, 1)
	require.Len(t, got[0], 2)
	require.Equal(t, 1.0, got[0][0].Score)
	require.Equal(t, 0.5, got[0][1].Score)
}

func TestLoadTextResolvesNonterminalMarkerAndWordNum(t *testing.T) {
	src := vocabWith("el", "gato")
	tgt := vocabWith("the", "cat")
	ntID := tgt.GetID("[X][X]")

	text := "el [X][X] ||| the [X][X] ||| 1.0 ||| 1.0 ||| 1\n"
	m, err := LoadText(strings.NewReader(text), src, tgt)
	require.NoError(t, err)

	key := []int{src.GetID("el"), src.GetID("[X][X]")}
	got := m.PrefixMatch(key, 0)
	rule := got[1][0]
	require.Equal(t, 1, rule.WordNum)
	require.Contains(t, rule.TgtWids, ntID)
}

func TestLoadTextSkipsBlankAndCommentLines(t *testing.T) {
	src := vocabWith("a")
	tgt := vocabWith("b")
	text := "\n# comment\na ||| b ||| 1.0 ||| 1.0 ||| 1\n"
	m, err := LoadText(strings.NewReader(text), src, tgt)
	require.NoError(t, err)
	got := m.PrefixMatch([]int{src.GetID("a")}, 0)
	require.Len(t, got[0], 1)
}

func TestLoadTextRejectsWrongColumnCount(t *testing.T) {
	src := vocabWith("a")
	tgt := vocabWith("b")
	_, err := LoadText(strings.NewReader("a ||| b ||| 1.0\n"), src, tgt)
	require.Error(t, err)
}

func TestLoadTextRejectsNonNumericScore(t *testing.T) {
	src := vocabWith("a")
	tgt := vocabWith("b")
	_, err := LoadText(strings.NewReader("a ||| b ||| 1.0 ||| notanumber ||| 1\n"), src, tgt)
	require.Error(t, err)
}
