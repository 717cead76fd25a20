package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "add succeeds", args: []string{"add", "exit cleanly"}, wantCode: 0},
		{name: "invalid id", args: []string{"done", "abc"}, wantCode: 1, wantErr: `invalid task id "abc"`},
		{name: "unknown id", args: []string{"rm", "42"}, wantCode: 1, wantErr: "error: "},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: 1, wantErr: "error: "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), &rootOptions{dir: dir}, tc.args, &stdout, &stderr)
			if code != tc.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tc.wantCode, stderr.String())
			}
			if tc.wantErr == "" {
				if stderr.Len() != 0 {
					t.Fatalf("unexpected stderr %q", stderr.String())
				}
				return
			}
			if !strings.Contains(stderr.String(), tc.wantErr) {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tc.wantErr)
			}
		})
	}
}
