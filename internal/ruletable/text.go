package ruletable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

// LoadText builds a Memory rule table from a line-oriented text format:
//
//	source tokens ||| target tokens ||| prob1 prob2 ... ||| score ||| type
//
// source and target tokens are space-separated, with "[X][X]" standing in
// for a nonterminal marker in either column; type is the integer value of
// decoder.RuleType. Rules sharing a source pattern are ranked in file
// order: the first line for a pattern is rank 0. Blank lines and lines
// starting with "#" are skipped.
//
// There is no such format in the original program. It reads a pre-built
// binary rule table as an opaque external file. This loader exists only so
// the module is runnable end to end without one (SPEC_FULL.md §4).
func LoadText(r io.Reader, srcVocab, tgtVocab decoder.Vocab) (*Memory, error) {
	t := NewMemory()
	pending := make(map[string]decoder.RankedTargetRules)
	order := make([]string, 0)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "|||")
		if len(cols) != 5 {
			return nil, fmt.Errorf("ruletable: line %d: want 5 |||-separated columns, got %d", lineNo, len(cols))
		}
		srcIDs := resolveIDs(strings.Fields(cols[0]), srcVocab)
		tgtIDs := resolveIDs(strings.Fields(cols[1]), tgtVocab)

		probs, err := parseFloats(strings.Fields(cols[2]))
		if err != nil {
			return nil, fmt.Errorf("ruletable: line %d: probs: %w", lineNo, err)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(cols[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("ruletable: line %d: score: %w", lineNo, err)
		}
		typeVal, err := strconv.Atoi(strings.TrimSpace(cols[4]))
		if err != nil {
			return nil, fmt.Errorf("ruletable: line %d: type: %w", lineNo, err)
		}

		wordNum := 0
		ntID := tgtVocab.GetID("[X][X]")
		for _, id := range tgtIDs {
			if id != ntID {
				wordNum++
			}
		}

		key := string(encodeIDs(srcIDs))
		if _, ok := pending[key]; !ok {
			order = append(order, key)
		}
		pending[key] = append(pending[key], &decoder.TargetRule{
			TgtWids: tgtIDs,
			Probs:   probs,
			Score:   score,
			Type:    decoder.RuleType(typeVal),
			WordNum: wordNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ruletable: %w", err)
	}

	t.mu.Lock()
	for _, key := range order {
		t.rules[key] = pending[key]
	}
	t.mu.Unlock()
	return t, nil
}

func resolveIDs(tokens []string, vocab decoder.Vocab) []int {
	ids := make([]int, len(tokens))
	ntID := vocab.GetID("[X][X]")
	for i, tok := range tokens {
		if tok == "[X][X]" {
			ids[i] = ntID
			continue
		}
		ids[i] = vocab.GetID(tok)
	}
	return ids
}

func parseFloats(tokens []string) ([]float64, error) {
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
