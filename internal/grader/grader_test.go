package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyan/shuati/internal/bank"
	"github.com/ziyan/shuati/internal/progress"
)

func question(qt bank.QuestionType, answer string) *bank.Question {
	return &bank.Question{ID: "q1", Type: qt, Stem: "stem", Answer: answer}
}

func TestGradeSingle(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		response string
		want     bool
	}{
		{"exact match", "A", "A", true},
		{"lowercase response", "A", "a", true},
		{"surrounding whitespace", "A", "  A ", true},
		{"wrong letter", "A", "B", false},
		{"empty response", "A", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(bank.TypeSingle, tt.answer)
			assert.Equal(t, tt.want, Grade(q, progress.TextResponse(tt.response)))
		})
	}
}

func TestGradeJudge(t *testing.T) {
	q := question(bank.TypeJudge, "对")
	assert.True(t, Grade(q, progress.TextResponse("对")))
	assert.False(t, Grade(q, progress.TextResponse("错")))
	assert.False(t, Grade(q, progress.TextResponse("")))
}

func TestGradeMultiple(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		response progress.Response
		want     bool
	}{
		{"same order", "ABD", progress.LetterResponse("A", "B", "D"), true},
		{"different order", "ABD", progress.LetterResponse("D", "A", "B"), true},
		{"duplicate selections", "ABD", progress.LetterResponse("A", "A", "B", "D"), true},
		{"lowercase letters", "ABD", progress.LetterResponse("a", "b", "d"), true},
		{"separators in canonical answer", "A,B,D", progress.LetterResponse("A", "B", "D"), true},
		{"missing letter", "ABD", progress.LetterResponse("A", "B"), false},
		{"extra letter", "ABD", progress.LetterResponse("A", "B", "C", "D"), false},
		{"no selection", "ABD", progress.LetterResponse(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(bank.TypeMultiple, tt.answer)
			assert.Equal(t, tt.want, Grade(q, tt.response))
		})
	}
}

func TestGradeBlank(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		response string
		want     bool
	}{
		{"exact match", "中国共产党", "中国共产党", true},
		{"surrounding whitespace", "中国共产党", " 中国共产党  ", true},
		{"full width space", "中国共产党", "　中国共产党", true},
		{"inner run collapses", "two words", "two   words", true},
		{"missing inner space", "two words", "twowords", false},
		{"punctuation differs", "中国共产党", "中国共产党。", false},
		{"wrong text", "中国共产党", "共产党", false},
		{"empty response", "中国共产党", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(bank.TypeBlank, tt.answer)
			assert.Equal(t, tt.want, Grade(q, progress.TextResponse(tt.response)))
		})
	}
}

// TestDrillWrongReviewFlow walks a two-question pass end to end:
// grade and record both answers, derive the wrong subset, enter a
// wrong-only review, and come back with the all-mode position intact.
func TestDrillWrongReviewFlow(t *testing.T) {
	q1 := &bank.Question{ID: "q1", Type: bank.TypeSingle, Stem: "pick", Answer: "A"}
	q2 := &bank.Question{ID: "q2", Type: bank.TypeMultiple, Stem: "pick two", Answer: "AC"}

	st := progress.New([]string{"q1", "q2"})

	r1 := progress.TextResponse("A")
	require.True(t, Grade(q1, r1))
	require.NoError(t, st.Record("q1", r1, Grade(q1, r1), 1))
	require.True(t, st.Advance())

	r2 := progress.LetterResponse("C")
	require.False(t, Grade(q2, r2))
	require.NoError(t, st.Record("q2", r2, Grade(q2, r2), 2))

	assert.Equal(t, []string{"q2"}, st.WrongSequence())
	assert.Equal(t, 1, st.ActiveIndex())

	st.SetMode(progress.ModeWrong)
	assert.Equal(t, []string{"q2"}, st.ActiveSequence())
	assert.Equal(t, 0, st.ActiveIndex(), "wrong pass starts at its first item")
	assert.False(t, st.Advance(), "one wrong item means the pass ends immediately")

	st.SetMode(progress.ModeAll)
	assert.Equal(t, 1, st.ActiveIndex(), "all-mode position survives the review")
}

func TestGradeFailsClosed(t *testing.T) {
	assert.False(t, Grade(nil, progress.TextResponse("A")))

	for _, qt := range []bank.QuestionType{bank.TypeSingle, bank.TypeMultiple, bank.TypeJudge, bank.TypeBlank} {
		q := question(qt, "  ")
		assert.False(t, Grade(q, progress.TextResponse("")), "type %s", qt)
		assert.False(t, Grade(q, progress.TextResponse("  ")), "type %s", qt)
	}
}
