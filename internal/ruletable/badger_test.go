package ruletable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

func TestBadgerPutAndPrefixMatchRoundTrip(t *testing.T) {
	bt, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer bt.Close()

	err = bt.Put([]int{1, 2}, decoder.RankedTargetRules{
		{TgtWids: []int{10, 11}, Probs: []float64{-1, -2}, Score: 0.75, Type: decoder.RuleLexical, WordNum: 2},
	})
	require.NoError(t, err)

	got := bt.PrefixMatch([]int{1, 2, 3}, 0)
	require.Len(t, got, 3)
	require.Nil(t, got[0])
	require.Len(t, got[1], 1)
	require.Equal(t, 0.75, got[1][0].Score)
	require.Equal(t, decoder.RuleLexical, got[1][0].Type)
	require.Nil(t, got[2])
}

func TestBadgerPrefixMatchMissingKeyIsNilNotError(t *testing.T) {
	bt, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer bt.Close()

	got := bt.PrefixMatch([]int{42}, 0)
	require.Len(t, got, 1)
	require.Nil(t, got[0])
}

func TestBadgerPutOverwritesPreviousValue(t *testing.T) {
	bt, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer bt.Close()

	require.NoError(t, bt.Put([]int{5}, decoder.RankedTargetRules{{Score: 1}}))
	require.NoError(t, bt.Put([]int{5}, decoder.RankedTargetRules{{Score: 2}}))

	got := bt.PrefixMatch([]int{5}, 0)
	require.Equal(t, 2.0, got[0][0].Score)
}
