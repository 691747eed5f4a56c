package ruletable

import (
	"sync"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

// Memory is an in-memory RuleTable keyed by the exact encoded id sequence
// of each pattern it was built with. It satisfies internal/decoder.RuleTable.
type Memory struct {
	mu    sync.RWMutex
	rules map[string]decoder.RankedTargetRules
}

// NewMemory returns an empty in-memory rule table.
func NewMemory() *Memory {
	return &Memory{rules: make(map[string]decoder.RankedTargetRules)}
}

// Put installs ranked as the rule list for the exact pattern ids, replacing
// any previous entry for that pattern.
func (t *Memory) Put(ids []int, ranked decoder.RankedTargetRules) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules[string(encodeIDs(ids))] = ranked
}

// PrefixMatch implements internal/decoder.RuleTable by looking up every
// prefix length of ids[start:] independently; a map miss naturally returns
// the nil RankedTargetRules the decoder treats as "no rule".
func (t *Memory) PrefixMatch(ids []int, start int) []decoder.RankedTargetRules {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := len(ids) - start
	out := make([]decoder.RankedTargetRules, n)
	for k := 1; k <= n; k++ {
		out[k-1] = t.rules[string(encodeIDs(ids[start:start+k]))]
	}
	return out
}
