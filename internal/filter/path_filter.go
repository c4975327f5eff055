// Package filter decides which workspace files take part in a flattened snapshot.
package filter

import (
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// PathFilter answers whether a root-relative path is excluded by an ordered
// set of gitignore-style patterns. A later pattern overrides an earlier one,
// so a negation can re-include a path excluded before it.
type PathFilter struct {
	patterns []string
	matcher  *gitignore.GitIgnore
}

// NewPathFilter compiles the patterns in order. Blank lines and comments are
// accepted and ignored, so the raw lines of a .gitignore file can be passed directly.
func NewPathFilter(patterns []string) *PathFilter {
	retained := make([]string, 0, len(patterns))
	translated := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		translatedPattern, ok := translatePattern(pattern)
		if !ok {
			continue
		}
		retained = append(retained, trimPatternLine(pattern))
		translated = append(translated, translatedPattern)
	}
	return &PathFilter{
		patterns: retained,
		matcher:  gitignore.CompileIgnoreLines(translated...),
	}
}

// IsExcluded reports whether relativePath is excluded. The path is slash
// separated and relative to the root; a leading "/" is tolerated.
func (pathFilter *PathFilter) IsExcluded(relativePath string) bool {
	if pathFilter == nil || pathFilter.matcher == nil || len(pathFilter.patterns) == 0 {
		return false
	}
	normalizedPath := strings.TrimPrefix(strings.ReplaceAll(relativePath, "\\", "/"), "/")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}
	return pathFilter.matcher.MatchesPath(normalizedPath)
}

// IsDirectoryExcluded reports whether the directory at relativePath is
// excluded. Files below an excluded directory cannot be re-included.
func (pathFilter *PathFilter) IsDirectoryExcluded(relativePath string) bool {
	normalizedPath := strings.Trim(strings.ReplaceAll(relativePath, "\\", "/"), "/")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}
	return pathFilter.IsExcluded(normalizedPath + "/")
}

// Patterns returns a copy of the effective patterns in evaluation order.
func (pathFilter *PathFilter) Patterns() []string {
	if pathFilter == nil {
		return nil
	}
	return append([]string(nil), pathFilter.patterns...)
}
