package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDerivesMs(t *testing.T) {
	r := NewRecord(2_500_000, 100)
	assert.InDelta(t, 2.5, r.TimeMs, 1e-12)
	assert.Equal(t, int64(100), r.Iterations)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rs := NewResultSet("go-regexp")
	rs.Results["literal_match_short"] = NewRecord(1621.46337890, 830000)
	rs.Results["anchor_start"] = NewRecord(42.0, 1000)

	path := filepath.Join(t.TempDir(), "results", "go_results.json")
	require.NoError(t, rs.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, rs.Engine, loaded.Engine)
	assert.Equal(t, rs.Timestamp, loaded.Timestamp)
	assert.Equal(t, rs.Results, loaded.Results)

	// Re-saving the loaded set must produce field-identical output.
	path2 := filepath.Join(t.TempDir(), "again.json")
	require.NoError(t, loaded.Save(path2))
	reloaded, err := Load(path2)
	require.NoError(t, err)
	assert.Equal(t, loaded, reloaded)
}

func TestSaveCreatesMissingDirectories(t *testing.T) {
	rs := NewResultSet("regexp2")
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.json")
	require.NoError(t, rs.Save(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestNamesSorted(t *testing.T) {
	rs := NewResultSet("go-regexp")
	rs.Results["z"] = NewRecord(1, 1)
	rs.Results["a"] = NewRecord(1, 1)
	rs.Results["m"] = NewRecord(1, 1)

	assert.Equal(t, []string{"a", "m", "z"}, rs.Names())
}
