package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// failingReader errors on every read
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input io.Reader
		want  bool
	}{
		{"y", strings.NewReader("y\n"), true},
		{"YES", strings.NewReader("YES\n"), true},
		{"padded yes", strings.NewReader("  yes  \n"), true},
		{"n", strings.NewReader("n\n"), false},
		{"blank line", strings.NewReader("\n"), false},
		{"other word", strings.NewReader("sure\n"), false},
		{"no newline before EOF", strings.NewReader("y"), false},
		{"EOF", strings.NewReader(""), false},
		{"read error", failingReader{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if got := confirm(&out, tt.input, "Remove account work?"); got != tt.want {
				t.Errorf("confirm() = %v, want %v", got, tt.want)
			}
			if out.String() != "Remove account work? [y/N]: " {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestRunClean_DeclineKeepsFiles(t *testing.T) {
	var out bytes.Buffer
	if err := runCleanWithReader(&out, strings.NewReader("n\n"), false); err != nil {
		t.Fatalf("runCleanWithReader() error = %v", err)
	}
	got := out.String()
	if strings.Contains(got, "Removed") {
		t.Errorf("declining should not remove anything, got %q", got)
	}
	if !strings.Contains(got, "Nothing to clean.") && !strings.Contains(got, "Aborted.") {
		t.Errorf("unexpected output %q", got)
	}
}
