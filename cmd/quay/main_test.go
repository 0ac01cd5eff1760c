package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/quay/internal/app"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    app.Options
		wantErr string
	}{
		{name: "none", args: nil, want: app.Options{}},
		{
			name: "all",
			args: []string{"-c", "q.toml", "--prefs", "p.toml", "-d", "data.jsonc", "-r", "tview", "--poll", "5", "--log", "quay.log", "--locale", "de"},
			want: app.Options{
				ConfigPath: "q.toml",
				PrefsPath:  "p.toml",
				DataPath:   "data.jsonc",
				Renderer:   "tview",
				PollEvery:  5,
				LogFile:    "quay.log",
				Locale:     "de",
			},
		},
		{name: "zero poll", args: []string{"--poll", "0"}, wantErr: "--poll must be positive"},
		{name: "stray argument", args: []string{"extra"}, wantErr: "unexpected argument"},
		{name: "unknown flag", args: []string{"--nope"}, wantErr: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("parseFlags() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--help"}, &out, &errOut); code != 0 {
		t.Fatalf("run(--help) = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "Usage: quay") {
		t.Errorf("help output = %q", out.String())
	}
}

func TestRun_BadFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--poll", "x"}, &out, &errOut); code != 2 {
		t.Fatalf("run(--poll x) = %d, want 2", code)
	}
	if !strings.HasPrefix(errOut.String(), "quay: ") {
		t.Errorf("stderr = %q", errOut.String())
	}
}
