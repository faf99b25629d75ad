package events

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLines(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity.log")
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(string(rune('a' + i)))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTail(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		n     int
		want  []string
	}{
		{"fewer than n", 2, 5, []string{"a", "b"}},
		{"exactly n", 3, 3, []string{"a", "b", "c"}},
		{"wraps ring", 5, 2, []string{"d", "e"}},
		{"zero n", 3, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(writeLines(t, tt.lines), tt.n)
			if err != nil {
				t.Fatalf("Tail: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Tail = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTailMissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no lines, got %v", got)
	}
}
