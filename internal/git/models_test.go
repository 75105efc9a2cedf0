package git

import "testing"

func TestCommit_Subject(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "single line", message: "Fix parser", expected: "Fix parser"},
		{name: "multi line", message: "Fix parser\n\nLong body here", expected: "Fix parser"},
		{name: "empty", message: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Message: tt.message}
			if got := c.Subject(); got != tt.expected {
				t.Errorf("Subject() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCommit_ShortHash(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		expected string
	}{
		{name: "full hash", hash: "0123456789abcdef0123456789abcdef01234567", expected: "01234567"},
		{name: "short hash", hash: "abc123", expected: "abc123"},
		{name: "empty", hash: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Hash: tt.hash}
			if got := c.ShortHash(); got != tt.expected {
				t.Errorf("ShortHash() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCommit_Churn(t *testing.T) {
	c := Commit{Insertions: 12, Deletions: 5}
	if got := c.Churn(); got != 17 {
		t.Errorf("Churn() = %d, expected 17", got)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{name: "empty", content: "", expected: 0},
		{name: "one line with newline", content: "a\n", expected: 1},
		{name: "one line without newline", content: "a", expected: 1},
		{name: "three lines", content: "a\nb\nc\n", expected: 3},
		{name: "trailing line without newline", content: "a\nb", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLines(tt.content); got != tt.expected {
				t.Errorf("countLines(%q) = %d, expected %d", tt.content, got, tt.expected)
			}
		})
	}
}
