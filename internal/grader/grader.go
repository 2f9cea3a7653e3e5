// Package grader scores one submitted answer against a question's
// canonical answer. Grading is a pure function of its inputs and is
// computed exactly once, at submission time.
package grader

import (
	"sort"
	"strings"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/progress"
)

// Grade reports whether response answers q correctly. It fails
// closed: a question without a canonical answer can never be marked
// correct.
func Grade(q *bank.Question, response progress.Response) bool {
	if q == nil || strings.TrimSpace(q.Answer) == "" {
		return false
	}

	switch q.Type {
	case bank.TypeMultiple:
		return letterSet(response.String()) == letterSet(q.Answer)
	case bank.TypeBlank:
		return foldSpace(response.Text) == foldSpace(q.Answer)
	default:
		// single and judge: trimmed, case-insensitive letter equality.
		return strings.ToUpper(strings.TrimSpace(response.Text)) ==
			strings.ToUpper(strings.TrimSpace(q.Answer))
	}
}

// letterSet normalizes a letter answer: uppercase, drop anything that
// is not A-Z, dedupe, sort. Order and duplicate entry are irrelevant
// for multiple-choice.
func letterSet(s string) string {
	seen := make(map[rune]struct{})
	var letters []rune
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return string(letters)
}

// foldSpace normalizes whitespace only: full-width spaces become
// regular spaces, runs collapse to one, ends are trimmed. Punctuation
// is preserved deliberately; a blank answer differing only in
// punctuation is wrong.
func foldSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
