package commands_test

import (
	"strings"
	"testing"

	"github.com/temirov/flatten/internal/commands"
)

func TestAnnotateLines(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "no_trailing_newline", content: "a\nb\nc", expected: []string{"a", "b", "c"}},
		{name: "trailing_newline", content: "a\nb\n", expected: []string{"a", "b", ""}},
		{name: "empty_content", content: "", expected: []string{""}},
		{name: "carriage_returns_kept", content: "a\r\nb", expected: []string{"a\r", "b"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			lines := commands.AnnotateLines(testCase.content)
			if len(lines) != len(testCase.expected) {
				t.Fatalf("expected %d lines, got %d", len(testCase.expected), len(lines))
			}
			contents := make([]string, 0, len(lines))
			for index, line := range lines {
				if line.Number != index+1 {
					t.Fatalf("line %d numbered %d", index, line.Number)
				}
				if line.Content != testCase.expected[index] {
					t.Fatalf("line %d: expected %q, got %q", index+1, testCase.expected[index], line.Content)
				}
				contents = append(contents, line.Content)
			}
			if joined := strings.Join(contents, "\n"); joined != testCase.content {
				t.Fatalf("round trip mismatch: %q != %q", joined, testCase.content)
			}
		})
	}
}
