package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyan/shuati/internal/progress"
	"github.com/ziyan/shuati/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)
	st := store.New(kv, zerolog.Nop())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestApplyNewBank(t *testing.T) {
	st := newStore(t)
	p := Export(map[string]*progress.State{"bank1": sampleState(t, []string{"q1"})}, nil, time.Now())

	rep := Apply(st, p, zerolog.Nop())
	assert.Equal(t, Report{Imported: 1, Skipped: 0}, rep)

	got := st.Load("bank1")
	require.NotNil(t, got)
	assert.True(t, got.Answers["q1"].Correct)
}

func TestApplyMergesWithLocal(t *testing.T) {
	st := newStore(t)

	local := progress.New([]string{"q1", "q2"})
	require.NoError(t, local.Record("q1", progress.TextResponse("X"), false, 50))
	require.NoError(t, st.Save("bank1", local))

	incoming := progress.New([]string{"q1", "q2", "q3"})
	require.NoError(t, incoming.Record("q1", progress.TextResponse("A"), true, 999))

	p := Export(map[string]*progress.State{"bank1": incoming}, nil, time.Now())
	rep := Apply(st, p, zerolog.Nop())
	assert.Equal(t, 1, rep.Imported)

	got := st.Load("bank1")
	require.NotNil(t, got)
	assert.Equal(t, []string{"q1", "q2", "q3"}, got.QuestionIDs)
	assert.False(t, got.Answers["q1"].Correct, "locally wrong answer stays wrong")
}

func TestApplyRefusesUnsafeBankIDs(t *testing.T) {
	base := t.TempDir()
	kv, err := store.OpenFile(filepath.Join(base, "slots"))
	require.NoError(t, err)
	st := store.New(kv, zerolog.Nop())
	t.Cleanup(func() { _ = st.Close() })

	// A crafted payload may carry any key; ids that would escape the
	// slot directory must be skipped, not written.
	p := &Payload{
		Schema:        SchemaName,
		SchemaVersion: SchemaVersion,
		Banks: map[string]BankEntry{
			"a/../../evil": {State: sampleState(t, []string{"q1"})},
			"good":         {State: sampleState(t, []string{"q1"})},
		},
	}

	rep := Apply(st, p, zerolog.Nop())
	assert.Equal(t, Report{Imported: 1, Skipped: 1}, rep)

	_, err = os.Stat(filepath.Join(base, "evil"))
	assert.True(t, os.IsNotExist(err), "no file outside the slot dir")
	assert.NotNil(t, st.Load("good"))
}

func TestApplySkipsInvalidEntries(t *testing.T) {
	st := newStore(t)
	p := &Payload{
		Schema:        SchemaName,
		SchemaVersion: SchemaVersion,
		Banks: map[string]BankEntry{
			"good": {State: sampleState(t, []string{"q1"})},
			"bad":  {State: &progress.State{Version: 42}},
		},
	}

	rep := Apply(st, p, zerolog.Nop())
	assert.Equal(t, Report{Imported: 1, Skipped: 1}, rep)
	assert.NotNil(t, st.Load("good"))
	assert.Nil(t, st.Load("bad"))
}
