package bank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `{
  "meta": {"count": 1},
  "banks": [
    {"id": "civics", "name": "Civics Basics", "count": 2, "questionsPath": "civics.json"}
  ]
}`

const testQuestions = `{
  "meta": {"bankId": "civics", "count": 2},
  "questions": [
    {"id": "q1", "type": "single", "stem": "Pick one", "options": {"A": "yes", "B": "no"}, "answer": "A"},
    {"id": "q2", "type": "blank", "stem": "Fill in", "answer": "中国共产党"}
  ]
}`

func writeBankDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(testManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "civics.json"), []byte(testQuestions), 0o644))
	return dir
}

func TestLoaderLocal(t *testing.T) {
	loader := NewLoader(writeBankDir(t))

	m, err := loader.Manifest(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Banks, 1)
	assert.Equal(t, "civics", m.Banks[0].ID)

	f, err := loader.Questions(context.Background(), m.Banks[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, f.IDs())
	assert.Equal(t, TypeBlank, f.ByID()["q2"].Type)
}

func TestLoaderRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/" + ManifestName:
			_, _ = w.Write([]byte(testManifest))
		case "/civics.json":
			_, _ = w.Write([]byte(testQuestions))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	loader := NewLoader(server.URL)

	m, err := loader.Manifest(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Banks, 1)

	f, err := loader.Questions(context.Background(), m.Banks[0])
	require.NoError(t, err)
	assert.Len(t, f.Questions, 2)
}

func TestLoaderRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing manifest", func(t *testing.T) {
		_, err := NewLoader(dir).Manifest(context.Background())
		assert.Error(t, err)
	})

	t.Run("manifest missing banks", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(`{"meta":{}}`), 0o644))
		_, err := NewLoader(dir).Manifest(context.Background())
		assert.Error(t, err)
	})

	t.Run("question with unknown type", func(t *testing.T) {
		bad := `{"questions": [{"id": "q1", "type": "essay", "stem": "write"}]}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(bad), 0o644))
		_, err := NewLoader(dir).Questions(context.Background(), Info{ID: "bad", QuestionsPath: "bad.json"})
		assert.Error(t, err)
	})
}
