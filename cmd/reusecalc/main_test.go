package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	t.Setenv("REUSECALC_HOME", t.TempDir())
	t.Setenv("REUSECALC_LOG_LEVEL", "error")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "version",
			args:       []string{"--version"},
			wantStdout: "reusecalc version dev",
		},
		{
			name:       "report",
			args:       []string{"project", "report", "--input", "../../internal/ingest/testdata/cafe.yaml"},
			wantStdout: "-$30,197.65",
		},
		{
			name:       "unknown command",
			args:       []string{"frobnicate"},
			wantCode:   1,
			wantStderr: "Error: unknown command",
		},
		{
			name:       "missing input",
			args:       []string{"project", "report", "--input", "nope.yaml"},
			wantCode:   1,
			wantStderr: "loading projects",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stdout.String(), tt.wantStdout)
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}
