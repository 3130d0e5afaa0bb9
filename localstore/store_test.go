package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveAndLoad(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	store.Save("rec", record{Name: "daily", Count: 3})

	var got record
	assert.True(t, store.Load("rec", &got))
	assert.Equal(t, record{Name: "daily", Count: 3}, got)
}

func TestLoadAbsentKeyLeavesDefault(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	got := record{Name: "default"}
	assert.False(t, store.Load("missing", &got))
	assert.Equal(t, "default", got.Name)
}

func TestLoadCorruptBlobLeavesDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	got := record{Name: "default"}
	assert.False(t, store.Load("bad", &got))
	assert.Equal(t, "default", got.Name)
}

func TestSaveNilRemoves(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	store.Save("rec", record{Name: "x"})
	store.Save("rec", nil)

	var got record
	assert.False(t, store.Load("rec", &got))
}

func TestRemoveAbsentKey(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	store.Remove("never-existed")
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	_, err := Open(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
