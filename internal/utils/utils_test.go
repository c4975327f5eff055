package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/flatten/internal/utils"
)

// TestRelativePathOrSelf verifies slash-separated relative path computation.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	testCases := []struct {
		testName string
		fullPath string
		expected string
	}{
		{testName: "root itself", fullPath: rootDirectory, expected: "."},
		{testName: "nested file", fullPath: filepath.Join(rootDirectory, "src", "a.ts"), expected: "src/a.ts"},
		{testName: "outside root", fullPath: filepath.Dir(rootDirectory), expected: ".."},
	}
	for _, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, rootDirectory)
		if actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.testName, testCase.expected, actual)
		}
	}
}

// TestIsWithinRoot verifies detection of paths escaping the root.
func TestIsWithinRoot(testingInstance *testing.T) {
	testCases := map[string]bool{
		".":          true,
		"src/a.ts":   true,
		"..hidden":   true,
		"..":         false,
		"../sibling": false,
	}
	for relativePath, expected := range testCases {
		if actual := utils.IsWithinRoot(relativePath); actual != expected {
			testingInstance.Errorf("IsWithinRoot(%q): expected %t, got %t", relativePath, expected, actual)
		}
	}
}

// TestEntryPath verifies the leading slash form of output paths.
func TestEntryPath(testingInstance *testing.T) {
	if actual := utils.EntryPath("src/a.ts"); actual != "/src/a.ts" {
		testingInstance.Fatalf("expected /src/a.ts, got %s", actual)
	}
	if actual := utils.EntryPath("/README.md"); actual != "/README.md" {
		testingInstance.Fatalf("expected /README.md, got %s", actual)
	}
}

// TestDecodeText verifies that invalid UTF-8 is reported as undecodable.
func TestDecodeText(testingInstance *testing.T) {
	decoded, ok := utils.DecodeText([]byte("hi\r\nthere"))
	if !ok || decoded != "hi\r\nthere" {
		testingInstance.Fatalf("unexpected decode result %q %t", decoded, ok)
	}
	if _, ok := utils.DecodeText([]byte{0xff, 0xfe, 0x00}); ok {
		testingInstance.Fatalf("expected invalid UTF-8 to be rejected")
	}
}

// TestResolveAgainst verifies that relative paths join onto the base directory.
func TestResolveAgainst(testingInstance *testing.T) {
	baseDirectory := testingInstance.TempDir()
	absolutePath := filepath.Join(baseDirectory, "elsewhere")
	if actual := utils.ResolveAgainst("/unused", absolutePath); actual != absolutePath {
		testingInstance.Errorf("expected absolute path %q, got %q", absolutePath, actual)
	}
	if actual := utils.ResolveAgainst(baseDirectory, "src"); actual != filepath.Join(baseDirectory, "src") {
		testingInstance.Errorf("unexpected joined path %q", actual)
	}
	if actual := utils.ResolveAgainst(baseDirectory, "."); actual != baseDirectory {
		testingInstance.Errorf("expected base directory, got %q", actual)
	}
}
