package transfer

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyan/shuati/internal/progress"
)

func sampleState(t *testing.T, ids []string) *progress.State {
	t.Helper()
	s := progress.New(ids)
	if len(ids) > 0 {
		require.NoError(t, s.Record(ids[0], progress.TextResponse("A"), true, 100))
	}
	return s
}

func TestExport(t *testing.T) {
	states := map[string]*progress.State{
		"bank1": sampleState(t, []string{"q1", "q2"}),
		"bad":   {Version: 42},
	}
	names := map[string]string{"bank1": "Civics 101"}
	now := time.UnixMilli(1756500000000)

	p := Export(states, names, now)

	assert.Equal(t, SchemaName, p.Schema)
	assert.Equal(t, SchemaVersion, p.SchemaVersion)
	assert.Equal(t, now.UnixMilli(), p.ExportedAt)
	require.Len(t, p.Banks, 1, "invalid state left out")
	assert.Equal(t, "Civics 101", p.Banks["bank1"].Name)
}

func TestExportRoundTrip(t *testing.T) {
	states := map[string]*progress.State{"bank1": sampleState(t, []string{"q1", "q2"})}
	data, err := Export(states, nil, time.Now()).Marshal()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Contains(t, got.Banks, "bank1")
	assert.Equal(t, []string{"q1", "q2"}, got.Banks["bank1"].State.QuestionIDs)
	assert.True(t, got.Banks["bank1"].State.Answers["q1"].Correct)
}

func TestDecodeBareMap(t *testing.T) {
	state := sampleState(t, []string{"q1"})
	raw, err := state.Encode()
	require.NoError(t, err)

	data := []byte(fmt.Sprintf(`{"bank1": %s}`, raw))
	got, err := Decode(data)
	require.NoError(t, err)
	require.Contains(t, got.Banks, "bank1")
	assert.Equal(t, []string{"q1"}, got.Banks["bank1"].State.QuestionIDs)
	assert.Empty(t, got.Banks["bank1"].Name)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "hello there"},
		{"json scalar", `42`},
		{"json array", `[1,2,3]`},
		{"canonical with wrong version", `{"schema":"quiz-progress-export","schemaVersion":99,"banks":{}}`},
		{"canonical without banks", `{"schema":"quiz-progress-export","schemaVersion":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeDropsUnusableEntries(t *testing.T) {
	good := sampleState(t, []string{"q1"})
	goodRaw, err := good.Encode()
	require.NoError(t, err)

	payload := map[string]any{
		"schema":        SchemaName,
		"schemaVersion": SchemaVersion,
		"exportedAt":    123,
		"banks": map[string]any{
			"good": map[string]any{"name": "Good", "state": json.RawMessage(goodRaw)},
			"bad":  map[string]any{"name": "Bad", "state": map[string]any{"version": 42}},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Contains(t, got.Banks, "good")
	assert.NotContains(t, got.Banks, "bad")
}
