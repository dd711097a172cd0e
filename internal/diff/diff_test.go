package diff

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{
			name: "identical",
			old:  "a\nb\n",
			new:  "a\nb\n",
			want: "  a\n  b\n",
		},
		{
			name: "changed line",
			old:  "a\nb\nc\n",
			new:  "a\nB\nc\n",
			want: "  a\n- b\n+ B\n  c\n",
		},
		{
			name: "appended line",
			old:  "a\n",
			new:  "a\nb\n",
			want: "  a\n+ b\n",
		},
		{
			name: "from empty",
			old:  "",
			new:  "hello\n",
			want: "+ hello\n",
		},
		{
			name: "long unchanged run collapsed",
			old:  "1\n2\n3\n4\n5\n6\n7\n8\nx\n",
			new:  "1\n2\n3\n4\n5\n6\n7\n8\ny\n",
			want: "  1\n  2\n  3\n  ...\n  6\n  7\n  8\n- x\n+ y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "before", "after")
			if r.Diff != tt.want {
				t.Errorf("Compute() diff =\n%q\nwant\n%q", r.Diff, tt.want)
			}
		})
	}
}

func TestResult_Format(t *testing.T) {
	r := Compute("a\n", "b\n", "note.md (before)", "note.md (after)")

	plain := r.Format(false)
	if !strings.HasPrefix(plain, "--- note.md (before)\n+++ note.md (after)\n") {
		t.Errorf("Format(false) header = %q", plain)
	}
	if !strings.Contains(plain, "- a\n+ b\n") {
		t.Errorf("Format(false) body = %q", plain)
	}

	coloured := r.Format(true)
	if !strings.Contains(coloured, "\033[31m- a\033[0m") || !strings.Contains(coloured, "\033[32m+ b\033[0m") {
		t.Errorf("Format(true) = %q, want ANSI colours", coloured)
	}
}

func TestCompute_Counts(t *testing.T) {
	r := Compute("a\nb\nc\n", "a\nB\nc\nd\n", "before", "after")
	if r.Added != 2 || r.Removed != 1 {
		t.Errorf("Compute() added=%d removed=%d, want 2 and 1", r.Added, r.Removed)
	}
	if got := r.Summary(); got != "2 added, 1 removed" {
		t.Errorf("Summary() = %q", got)
	}

	same := Compute("x\n", "x\n", "before", "after")
	if same.Added != 0 || same.Removed != 0 {
		t.Errorf("identical content counted %d/%d", same.Added, same.Removed)
	}
}
