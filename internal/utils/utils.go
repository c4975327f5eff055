// Package utils contains general helper functions used across the flatten tool.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// GitIgnoreFileName is the name of the Git ignore file read from the root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitDirectoryPattern excludes the Git directory unless it is explicitly included.
	GitDirectoryPattern = GitDirectoryName + "/"
)

const pathSegmentSeparator = "/"

// RelativePathOrSelf calculates the slash-separated path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// IsWithinRoot reports whether a root-relative path produced by RelativePathOrSelf
// stays inside the root.
func IsWithinRoot(relativePath string) bool {
	if relativePath == "." {
		return true
	}
	if filepath.IsAbs(relativePath) {
		return false
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, ".."+pathSegmentSeparator)
}

// EntryPath converts a root-relative slash path into the "/"-prefixed form used in output.
func EntryPath(relativePath string) string {
	return pathSegmentSeparator + strings.TrimPrefix(relativePath, pathSegmentSeparator)
}

// ResolveAgainst returns path unchanged when it is absolute and joined onto base otherwise.
func ResolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
