package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	assert.True(t, s.Valid())
	assert.Equal(t, ModeAll, s.Mode)
	assert.Equal(t, 0, s.CurrentIndexAll)
	assert.Equal(t, 0, s.CurrentIndexWrong)
	assert.Equal(t, []string{"a", "b", "c"}, s.QuestionIDs)
	assert.Empty(t, s.Answers)
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		state *State
		want  bool
	}{
		{"nil state", nil, false},
		{"fresh state", New(nil), true},
		{"wrong version", &State{Version: 2, QuestionIDs: []string{}, Answers: map[string]*AnswerRecord{}}, false},
		{"missing ids", &State{Version: SchemaVersion, Answers: map[string]*AnswerRecord{}}, false},
		{"missing answers", &State{Version: SchemaVersion, QuestionIDs: []string{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Valid())
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := New([]string{"a", "b"})
		require.NoError(t, s.Record("a", TextResponse("A"), true, 1700000000000))

		raw, err := s.Encode()
		require.NoError(t, err)

		got, err := Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, s.QuestionIDs, got.QuestionIDs)
		require.Contains(t, got.Answers, "a")
		assert.True(t, got.Answers["a"].Correct)
		assert.Equal(t, "A", got.Answers["a"].Response.Text)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := Decode([]byte("{truncated"))
		assert.Error(t, err)
	})

	t.Run("wrong version", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":99,"mode":"all","questionIds":[],"answers":{}}`))
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":1}`))
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestRecord(t *testing.T) {
	s := New([]string{"a", "b"})

	require.NoError(t, s.Record("a", TextResponse("B"), false, 100))

	t.Run("already answered", func(t *testing.T) {
		err := s.Record("a", TextResponse("A"), true, 200)
		assert.ErrorIs(t, err, ErrAlreadyAnswered)
		assert.False(t, s.Answers["a"].Correct, "existing record must not change")
		assert.Equal(t, int64(100), s.Answers["a"].TS)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := s.Record("zz", TextResponse("A"), true, 200)
		assert.ErrorIs(t, err, ErrUnknownQuestion)
		assert.NotContains(t, s.Answers, "zz")
	})
}

func TestMatchesBank(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	assert.True(t, s.MatchesBank([]string{"a", "b", "c"}))
	assert.True(t, s.MatchesBank([]string{"c", "a", "b"}), "order is not structural")
	assert.False(t, s.MatchesBank([]string{"a", "b"}))
	assert.False(t, s.MatchesBank([]string{"a", "b", "d"}))
	assert.False(t, s.MatchesBank([]string{"a", "b", "c", "d"}))
}

func TestRebuild(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	require.NoError(t, s.Record("a", TextResponse("A"), true, 1))
	require.NoError(t, s.Record("b", TextResponse("X"), false, 2))
	s.Mode = ModeWrong
	s.CurrentIndexAll = 2
	s.CurrentIndexWrong = 1

	s.Rebuild([]string{"b", "c", "d"})

	assert.Equal(t, []string{"b", "c", "d"}, s.QuestionIDs)
	assert.NotContains(t, s.Answers, "a", "answer for removed id is pruned")
	assert.Contains(t, s.Answers, "b", "answer for surviving id is kept")
	assert.Equal(t, ModeAll, s.Mode)
	assert.Equal(t, 0, s.CurrentIndexAll)
	assert.Equal(t, 0, s.CurrentIndexWrong)
}

func TestClone(t *testing.T) {
	s := New([]string{"a", "b"})
	require.NoError(t, s.Record("a", LetterResponse("A", "C"), false, 5))

	c := s.Clone()
	c.QuestionIDs[0] = "zz"
	c.Answers["a"].Correct = true
	c.Answers["a"].Response.Letters[0] = "B"

	assert.Equal(t, "a", s.QuestionIDs[0])
	assert.False(t, s.Answers["a"].Correct)
	assert.Equal(t, "A", s.Answers["a"].Response.Letters[0])
}

func TestSummarize(t *testing.T) {
	s := New([]string{"a", "b", "c", "d"})
	require.NoError(t, s.Record("a", TextResponse("A"), true, 1))
	require.NoError(t, s.Record("b", TextResponse("X"), false, 2))
	require.NoError(t, s.Record("c", TextResponse("C"), true, 3))

	sum := s.Summarize()
	assert.Equal(t, Summary{Total: 4, Answered: 3, Correct: 2, Wrong: 1, Accuracy: 2.0 / 3.0}, sum)

	empty := New([]string{"a"})
	assert.Zero(t, empty.Summarize().Accuracy)
}
