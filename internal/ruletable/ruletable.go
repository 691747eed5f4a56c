// Package ruletable provides the decoder's default RuleTable
// implementations: an in-memory map-backed table for tests and small
// grammars, and a Badger-backed table for grammars too large to hold
// resident (spec.md §3's RuleTable, SPEC_FULL.md §3).
package ruletable

import "encoding/binary"

// encodeIDs packs a source-id sequence into a fixed-width byte key: four
// bytes per id, big-endian. Every rule-table key in this package uses this
// encoding, so lookups for different prefix lengths of the same ids slice
// never collide with each other or with an unrelated sequence.
func encodeIDs(ids []int) []byte {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(int32(id)))
	}
	return buf
}
