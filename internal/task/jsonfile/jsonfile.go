// Package jsonfile persists tasks as a JSON array in a single file.
package jsonfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/metalagman/tasker/internal/task"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultFile is the backing file name used when none is configured.
const DefaultFile = "tasks.json"

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// Backend reads and rewrites a JSON task file.
type Backend struct {
	path string
}

// New returns a backend for the file at path. The file is created on the
// first save.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the backing file path.
func (b *Backend) Path() string {
	return b.path
}

// Load reads the task file. A missing or empty file yields no tasks; a file
// that is not a valid task array fails.
func (b *Backend) Load(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", b.path).Msg("task file missing, starting empty")
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", task.ErrPersistence, b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []task.Task{}, nil
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", task.ErrPersistence, b.path, err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", task.ErrPersistence, b.path, err)
	}
	log.Debug().Str("path", b.path).Int("count", len(tasks)).Msg("task file loaded")
	return tasks, nil
}

// Save replaces the task file with tasks.
func (b *Backend) Save(ctx context.Context, tasks []task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%w: marshal tasks: %w", task.ErrPersistence, err)
	}
	if err := writeFileAtomic(b.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", task.ErrPersistence, b.path, err)
	}
	log.Debug().Str("path", b.path).Int("count", len(tasks)).Msg("task file saved")
	return nil
}

// Marshal encodes tasks in the on-disk layout.
func Marshal(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)
	return fmt.Errorf("invalid task file: %s", strings.Join(errs, "; "))
}

// writeFileAtomic writes through a temp file in the target directory so the
// file is either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
