// Package lexutil collects small, dependency-free helpers for deriving the
// lexical flags the decoder conditions its feature functions on: whether a
// source token is a verb (from its POS tag) and which source tokens belong
// to a fixed function-word set.
package lexutil

// IsVerbTag reports whether tag marks its token as a verb. The source
// corpus's tagset uses the Penn-Treebank convention of prefixing every verb
// tag with "V" (VB, VBD, VBG, VBN, VBP, VBZ); this checks only the prefix,
// matching the original model's single-character test.
func IsVerbTag(tag string) bool {
	return len(tag) > 0 && tag[0] == 'V'
}
