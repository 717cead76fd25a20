package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metalagman/tasker/internal/task"
)

func runTasker(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd, err := newRootCmd(&rootOptions{dir: dir})
	if err != nil {
		t.Fatalf("new root cmd: %v", err)
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runTasker(t, dir, args...)
	if err != nil {
		t.Fatalf("tasker %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestCommands_Scenario(t *testing.T) {
	dir := t.TempDir()

	if got := mustRun(t, dir, "add", "buy", "milk"); got != "Task added! Task ID: 1, Description: buy milk, Status: Pending\n" {
		t.Fatalf("add output = %q", got)
	}
	mustRun(t, dir, "add", "walk dog")
	if got := mustRun(t, dir, "rm", "1"); got != "Task 'buy milk' deleted.\n" {
		t.Fatalf("rm output = %q", got)
	}
	mustRun(t, dir, "add", "read book")

	if got, want := mustRun(t, dir, "list"), "2. [ ] walk dog\n3. [ ] read book\n"; got != want {
		t.Fatalf("list output = %q, want %q", got, want)
	}

	if got := mustRun(t, dir, "done", "2"); got != "Task 2 completed.\n" {
		t.Fatalf("done output = %q", got)
	}
	if got, want := mustRun(t, dir, "list"), "2. [✔] walk dog\n3. [ ] read book\n"; got != want {
		t.Fatalf("list output = %q, want %q", got, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("read tasks file: %v", err)
	}
	if !strings.Contains(string(data), `"completed": true`) {
		t.Fatalf("tasks file missing completed flag:\n%s", data)
	}
}

func TestCommands_ListEmpty(t *testing.T) {
	if got := mustRun(t, t.TempDir(), "list"); got != "No tasks.\n" {
		t.Fatalf("list output = %q", got)
	}
}

func TestCommands_Errors(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "only")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "non-numeric id", args: []string{"done", "abc"}, want: task.ErrInvalidInput},
		{name: "unknown id", args: []string{"rm", "9"}, want: task.ErrNotFound},
		{name: "blank description", args: []string{"add", "  "}, want: task.ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runTasker(t, dir, tc.args...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}

	if got := mustRun(t, dir, "list"); got != "1. [ ] only\n" {
		t.Fatalf("list after errors = %q", got)
	}
}

func TestCommands_SQLiteBackendFlag(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--backend", "sqlite", "add", "stored in sqlite")

	if _, err := os.Stat(filepath.Join(dir, "tasks.db")); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
	if got := mustRun(t, dir, "--backend", "sqlite", "list"); got != "1. [ ] stored in sqlite\n" {
		t.Fatalf("list output = %q", got)
	}
	if got := mustRun(t, dir, "list"); got != "No tasks.\n" {
		t.Fatalf("json backend should be untouched, got %q", got)
	}
}

func TestCommands_FileFlag(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--file", "work/todo.json", "add", "elsewhere")

	if _, err := os.Stat(filepath.Join(dir, "work", "todo.json")); err != nil {
		t.Fatalf("expected custom tasks file: %v", err)
	}
}

func TestCommands_Status(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "one")
	mustRun(t, dir, "add", "two")
	mustRun(t, dir, "done", "1")

	got := mustRun(t, dir, "status")
	for _, want := range []string{
		"backend:  json",
		"path:     " + filepath.Join(dir, "tasks.json"),
		"tasks:    2 (1 completed, 1 pending)",
		"next id:  3",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("status output missing %q:\n%s", want, got)
		}
	}
}

func TestCommands_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[{"), 0o644); err != nil {
		t.Fatalf("write tasks file: %v", err)
	}
	if _, err := runTasker(t, dir, "list"); err == nil {
		t.Fatalf("expected malformed file to fail")
	}
}
