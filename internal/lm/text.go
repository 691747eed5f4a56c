package lm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

// LoadText builds an NGram from a line-oriented bigram file:
//
//	word1 word2 logprob
//
// words are resolved through tgtVocab; "<eos>" resolves through tgtVocab
// too, so a caller wanting FinalIncreasedLMScore to score into a real
// terminator just adds it as an ordinary vocabulary entry. Blank lines and
// lines starting with "#" are skipped. floor is the log-probability for
// any bigram the file never mentions.
//
// As with ruletable.LoadText, this format has no counterpart in the
// original program, which treats its language model as an opaque external
// dependency (SPEC_FULL.md §4).
func LoadText(r io.Reader, tgtVocab decoder.Vocab, floor float64) (*NGram, error) {
	ntID := tgtVocab.GetID("[X][X]")
	eosID := tgtVocab.GetID("<eos>")
	m := New(ntID, eosID, floor)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("lm: line %d: want 3 fields, got %d", lineNo, len(fields))
		}
		logProb, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("lm: line %d: %w", lineNo, err)
		}
		m.Set(tgtVocab.GetID(fields[0]), tgtVocab.GetID(fields[1]), logProb)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}
	return m, nil
}
