package output_test

import (
	"testing"

	"github.com/temirov/flatten/internal/output"
)

func TestBuildTree(t *testing.T) {
	root := output.BuildTree([]string{"/src/a.ts", "/src/lib/b.ts", "README.md", "//docs//guide.md"})
	if !root.IsDirectory() {
		t.Fatalf("expected root directory")
	}
	source := root.Children["src"]
	if !source.IsDirectory() || len(source.Children) != 2 {
		t.Fatalf("unexpected src node: %+v", source)
	}
	if source.Children["a.ts"].Kind != output.NodeFile {
		t.Fatalf("expected a.ts to be a file")
	}
	if !source.Children["lib"].IsDirectory() {
		t.Fatalf("expected lib to be a directory")
	}
	if root.Children["README.md"].Kind != output.NodeFile {
		t.Fatalf("expected README.md to be a file")
	}
	if _, hasEmpty := root.Children[""]; hasEmpty {
		t.Fatalf("empty segments must not create nodes")
	}
	if !root.Children["docs"].IsDirectory() || root.Children["docs"].Children["guide.md"] == nil {
		t.Fatalf("expected docs/guide.md to be built")
	}
}

func TestBuildTreeNeverDescendsIntoFile(t *testing.T) {
	root := output.BuildTree([]string{"/a", "/a/b"})
	node := root.Children["a"]
	if node.Kind != output.NodeFile || len(node.Children) != 0 {
		t.Fatalf("expected a to stay a childless file, got %+v", node)
	}
}

func TestRenderTree(t *testing.T) {
	testCases := []struct {
		name     string
		paths    []string
		expected string
	}{
		{
			name:  "nested_last_branch",
			paths: []string{"/src/a.ts", "/README.md"},
			expected: "├── README.md\n" +
				"└── src\n" +
				"    └── a.ts\n",
		},
		{
			name:  "nested_middle_branch",
			paths: []string{"/a/x.go", "/a/y.go", "/b.go"},
			expected: "├── a\n" +
				"│   ├── x.go\n" +
				"│   └── y.go\n" +
				"└── b.go\n",
		},
		{
			name:  "files_and_directories_interleaved",
			paths: []string{"/lib/z.js", "/index.js", "/Makefile"},
			expected: "├── Makefile\n" +
				"├── index.js\n" +
				"└── lib\n" +
				"    └── z.js\n",
		},
		{
			name:     "empty",
			paths:    nil,
			expected: "",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rendered := output.RenderTree(output.BuildTree(testCase.paths), "")
			if rendered != testCase.expected {
				t.Fatalf("expected\n%s\ngot\n%s", testCase.expected, rendered)
			}
		})
	}
}

func TestRenderTreeIgnoresInputOrder(t *testing.T) {
	forward := []string{"/cmd/main.go", "/internal/a/a.go", "/internal/b.go", "/go.mod"}
	reversed := []string{"/go.mod", "/internal/b.go", "/internal/a/a.go", "/cmd/main.go"}
	forwardRendered := output.RenderTree(output.BuildTree(forward), "")
	reversedRendered := output.RenderTree(output.BuildTree(reversed), "")
	if forwardRendered != reversedRendered {
		t.Fatalf("render depends on input order:\n%s\nvs\n%s", forwardRendered, reversedRendered)
	}
}

func TestRenderTreeWithIndent(t *testing.T) {
	rendered := output.RenderTree(output.BuildTree([]string{"/a"}), "  ")
	if rendered != "  └── a\n" {
		t.Fatalf("unexpected render %q", rendered)
	}
}
