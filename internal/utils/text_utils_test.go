package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestTruncate(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	tests := []struct {
		name    string
		text    string
		maxSize int
		want    string
	}{
		{name: "shorter than limit", text: "hello", maxSize: 10, want: "hello"},
		{name: "exact limit", text: "hello", maxSize: 5, want: "hello"},
		{name: "over limit", text: "hello world", maxSize: 5, want: "hello"},
		{name: "zero disables", text: "hello", maxSize: 0, want: "hello"},
		{name: "negative disables", text: "hello", maxSize: -1, want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tp.Truncate(tt.text, tt.maxSize); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxSize, got, tt.want)
			}
		})
	}
}

func TestTruncate_UTF8Boundary(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// "héllo" with é as two bytes; cutting at 2 would split the rune.
	text := "héllo"
	got := tp.Truncate(text, 2)
	if !utf8.ValidString(got) {
		t.Fatalf("Truncate produced invalid UTF-8: %q", got)
	}
	if got != "h" {
		t.Errorf("Truncate = %q, want %q", got, "h")
	}

	// Multi-byte text cut mid-rune at every position stays valid.
	long := strings.Repeat("日本語", 10)
	for max := 1; max < len(long); max++ {
		if out := tp.Truncate(long, max); !utf8.ValidString(out) {
			t.Fatalf("Truncate(%d) produced invalid UTF-8", max)
		}
	}
}

func TestSanitize(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	if got := tp.Sanitize("clean text"); got != "clean text" {
		t.Errorf("Sanitize(clean) = %q", got)
	}

	dirty := "ab\xffcd"
	got := tp.Sanitize(dirty)
	if !utf8.ValidString(got) {
		t.Fatalf("Sanitize produced invalid UTF-8: %q", got)
	}
	if got != "abcd" {
		t.Errorf("Sanitize = %q, want %q", got, "abcd")
	}
}

func TestProcess(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	got := tp.Process("ab\xffcdef", 4)
	if got != "abcd" {
		t.Errorf("Process = %q, want %q", got, "abcd")
	}
}
