package cli

import (
	"path/filepath"
	"testing"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		File:    filepath.Join(t.TempDir(), "todos.json"),
		Theme:   "mono",
		NoColor: true,
	}
}

func TestRunUsage(t *testing.T) {
	opt := testOptions(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no args", nil, 2},
		{"unknown subcommand", []string{"frobnicate"}, 2},
		{"add without title", []string{"add"}, 2},
		{"done without id", []string{"done"}, 2},
		{"done with non-number", []string{"done", "two"}, 2},
		{"ls with bad filter", []string{"ls", "everything"}, 2},
		{"help", []string{"help"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Run(tt.args, opt); got != tt.want {
				t.Errorf("Run(%v): exit %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunWorkflow(t *testing.T) {
	opt := testOptions(t)
	steps := []struct {
		args []string
		want int
	}{
		{[]string{"add", "Buy milk", "two", "bottles"}, 0},
		{[]string{"add", "Write report"}, 0},
		{[]string{"ls"}, 0},
		{[]string{"ls", "pending"}, 0},
		{[]string{"done", "1"}, 0},
		{[]string{"done", "1"}, 0}, // idempotent
		{[]string{"undone", "1"}, 0},
		{[]string{"done", "2"}, 0},
		{[]string{"stats"}, 0},
		{[]string{"check"}, 0},
		{[]string{"clear"}, 0},
		{[]string{"rm", "1"}, 0},
	}
	for _, st := range steps {
		if got := Run(st.args, opt); got != st.want {
			t.Fatalf("Run(%v): exit %d, want %d", st.args, got, st.want)
		}
	}
}

func TestRunOperationErrors(t *testing.T) {
	opt := testOptions(t)
	if got := Run([]string{"add", "A"}, opt); got != 0 {
		t.Fatalf("add: exit %d, want 0", got)
	}

	// Blank title is a validation error, a usage-class failure.
	if got := Run([]string{"add", "   "}, opt); got != 2 {
		t.Errorf("add blank: exit %d, want 2", got)
	}
	// Unknown ids are operation failures.
	for _, args := range [][]string{{"done", "9"}, {"undone", "9"}, {"rm", "9"}} {
		if got := Run(args, opt); got != 1 {
			t.Errorf("Run(%v): exit %d, want 1", args, got)
		}
	}
}
