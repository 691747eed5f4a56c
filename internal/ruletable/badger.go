package ruletable

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

// Badger is a RuleTable backed by an embedded BadgerDB instance, for
// grammars too large to hold fully resident (SPEC_FULL.md §3). Keys are the
// same fixed-width encoded id sequences Memory uses; values are
// gob-encoded RankedTargetRules.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if absent) a Badger rule table at dir.
func OpenBadger(dir string) (*Badger, error) {
	db, err := badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, fmt.Errorf("ruletable: open badger at %s: %w", dir, err)
	}
	return &Badger{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (t *Badger) Close() error {
	return t.db.Close()
}

// Put persists ranked as the rule list for the exact pattern ids.
func (t *Badger) Put(ids []int, ranked decoder.RankedTargetRules) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(targetRulesToGob(ranked)); err != nil {
		return fmt.Errorf("ruletable: encode rules: %w", err)
	}
	key := encodeIDs(ids)
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf.Bytes())
	})
}

// PrefixMatch implements internal/decoder.RuleTable over the Badger store.
// A missing key (badger.ErrKeyNotFound) leaves that prefix length's entry
// nil, matching Memory's map-miss behavior.
func (t *Badger) PrefixMatch(ids []int, start int) []decoder.RankedTargetRules {
	n := len(ids) - start
	out := make([]decoder.RankedTargetRules, n)
	_ = t.db.View(func(txn *badger.Txn) error {
		for k := 1; k <= n; k++ {
			item, err := txn.Get(encodeIDs(ids[start : start+k]))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				continue
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				continue
			}
			var gobRules []gobTargetRule
			if err := gob.NewDecoder(bytes.NewReader(val)).Decode(&gobRules); err != nil {
				continue
			}
			out[k-1] = targetRulesFromGob(gobRules)
		}
		return nil
	})
	return out
}

// gobTargetRule mirrors decoder.TargetRule's exported fields so gob never
// needs to encode a decoder.RuleType value through an interface. It's a
// plain int under the hood, but keeping a local copy here means this
// package's on-disk format doesn't change if decoder.TargetRule ever grows
// an unexported field.
type gobTargetRule struct {
	TgtWids []int
	Probs   []float64
	Score   float64
	Type    int
	WordNum int
}

func targetRulesToGob(ranked decoder.RankedTargetRules) []gobTargetRule {
	out := make([]gobTargetRule, len(ranked))
	for i, tr := range ranked {
		out[i] = gobTargetRule{
			TgtWids: tr.TgtWids,
			Probs:   tr.Probs,
			Score:   tr.Score,
			Type:    int(tr.Type),
			WordNum: tr.WordNum,
		}
	}
	return out
}

func targetRulesFromGob(rows []gobTargetRule) decoder.RankedTargetRules {
	out := make(decoder.RankedTargetRules, len(rows))
	for i, r := range rows {
		out[i] = &decoder.TargetRule{
			TgtWids: r.TgtWids,
			Probs:   r.Probs,
			Score:   r.Score,
			Type:    decoder.RuleType(r.Type),
			WordNum: r.WordNum,
		}
	}
	return out
}
