package ruletable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

func TestMemoryPrefixMatchReturnsOnePerPrefixLength(t *testing.T) {
	m := NewMemory()
	m.Put([]int{1, 2}, decoder.RankedTargetRules{{WordNum: 2}})

	got := m.PrefixMatch([]int{1, 2, 3}, 0)
	require.Len(t, got, 3)
	require.Nil(t, got[0])
	require.NotNil(t, got[1])
	require.Equal(t, 2, got[1][0].WordNum)
	require.Nil(t, got[2])
}

func TestMemoryPrefixMatchRespectsStart(t *testing.T) {
	m := NewMemory()
	m.Put([]int{9}, decoder.RankedTargetRules{{WordNum: 1}})

	got := m.PrefixMatch([]int{1, 9}, 1)
	require.Len(t, got, 1)
	require.NotNil(t, got[0])
}

func TestMemoryPutReplacesExistingEntry(t *testing.T) {
	m := NewMemory()
	m.Put([]int{1}, decoder.RankedTargetRules{{WordNum: 1}})
	m.Put([]int{1}, decoder.RankedTargetRules{{WordNum: 2}})

	got := m.PrefixMatch([]int{1}, 0)
	require.Equal(t, 2, got[0][0].WordNum)
}
