package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/metalagman/tasker/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := New(filepath.Join(t.TempDir(), DefaultFile))
	want := []task.Task{
		{ID: 2, Description: "walk dog", Completed: true},
		{ID: 3, Description: "read book"},
		{ID: 10, Description: "naïve café ✔"},
	}

	require.NoError(t, backend.Save(ctx, want))
	got, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBackend_LoadMissingFile(t *testing.T) {
	t.Parallel()

	backend := New(filepath.Join(t.TempDir(), "nope", DefaultFile))
	got, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBackend_LoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	got, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBackend_LoadMalformedFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `[{"id": 1,`},
		{name: "not an array", content: `{"id": 1, "description": "x", "completed": false}`},
		{name: "legacy status field", content: `[{"id": 1, "description": "x", "status": false}]`},
		{name: "string id", content: `[{"id": "1", "description": "x", "completed": false}]`},
		{name: "empty description", content: `[{"id": 1, "description": "", "completed": false}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), DefaultFile)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := New(path).Load(context.Background())
			require.ErrorIs(t, err, task.ErrPersistence)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestBackend_SaveUsesFixedFieldNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, New(path).Save(context.Background(), []task.Task{{ID: 1, Description: "buy milk"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{
		"id":          float64(1),
		"description": "buy milk",
		"completed":   false,
	}, records[0])
}

func TestBackend_SaveEmptyWritesArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, New(path).Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestBackend_SaveReplacesWholeFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	backend := New(path)

	require.NoError(t, backend.Save(ctx, []task.Task{
		{ID: 1, Description: "a fairly long description that makes the file bigger"},
		{ID: 2, Description: "another one"},
	}))
	require.NoError(t, backend.Save(ctx, []task.Task{{ID: 2, Description: "another one"}}))

	got, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []task.Task{{ID: 2, Description: "another one"}}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, DefaultFile, entries[0].Name())
}

func TestBackend_SaveCreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultFile)
	require.NoError(t, New(path).Save(context.Background(), []task.Task{{ID: 1, Description: "x"}}))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestBackend_SaveFailureIsPersistenceError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := New(filepath.Join(blocker, DefaultFile)).Save(context.Background(), []task.Task{{ID: 1, Description: "x"}})
	require.ErrorIs(t, err, task.ErrPersistence)
}

func TestStoreOverJSONFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFile)

	store, err := task.Open(ctx, New(path))
	require.NoError(t, err)
	_, err = store.Add(ctx, "buy milk")
	require.NoError(t, err)
	_, err = store.Add(ctx, "walk dog")
	require.NoError(t, err)
	_, err = store.Delete(ctx, 1)
	require.NoError(t, err)
	_, err = store.Add(ctx, "read book")
	require.NoError(t, err)
	_, err = store.Complete(ctx, 2)
	require.NoError(t, err)

	reopened, err := task.Open(ctx, New(path))
	require.NoError(t, err)
	assert.Equal(t, []task.Task{
		{ID: 2, Description: "walk dog", Completed: true},
		{ID: 3, Description: "read book"},
	}, reopened.List())
	assert.Equal(t, int64(4), reopened.NextID())
}

func TestStoreOverJSONFile_RejectsMaxID(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFile)
	content := "[\n    {\"id\": 9223372036854775807, \"description\": \"x\", \"completed\": false}\n]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := task.Open(context.Background(), New(path))
	require.ErrorIs(t, err, task.ErrPersistence)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
