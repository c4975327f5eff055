package output

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/temirov/flatten/internal/types"
)

const (
	separatorWidth   = 80
	lineFormat       = "%2d | %s\n"
	pathHeaderFormat = "%s:\n"
	sectionBreak     = "\n\n"
)

var separatorLine = strings.Repeat("-", separatorWidth) + "\n"

// SortEntries returns a copy of entries ordered by path using a locale-aware
// collator. Paths that collate equal fall back to byte order.
func SortEntries(entries []types.FileEntry) []types.FileEntry {
	sortedEntries := append([]types.FileEntry(nil), entries...)
	collator := collate.New(language.Und)
	sort.SliceStable(sortedEntries, func(leftIndex, rightIndex int) bool {
		leftPath := sortedEntries[leftIndex].Path
		rightPath := sortedEntries[rightIndex].Path
		if comparison := collator.CompareString(leftPath, rightPath); comparison != 0 {
			return comparison < 0
		}
		return leftPath < rightPath
	})
	return sortedEntries
}

// Assemble renders the tree of every entry path followed by each entry's
// numbered lines between 80-dash separators. Entries are sorted first, so the
// result does not depend on the order in which files were collected.
func Assemble(entries []types.FileEntry) string {
	sortedEntries := SortEntries(entries)

	entryPaths := make([]string, 0, len(sortedEntries))
	for _, entry := range sortedEntries {
		entryPaths = append(entryPaths, entry.Path)
	}

	var builder strings.Builder
	builder.WriteString(RenderTreeOnly(entryPaths))
	builder.WriteString(sectionBreak)
	for _, entry := range sortedEntries {
		builder.WriteString(separatorLine)
		fmt.Fprintf(&builder, pathHeaderFormat, entry.Path)
		builder.WriteString(separatorLine)
		for _, line := range entry.Lines {
			fmt.Fprintf(&builder, lineFormat, line.Number, line.Content)
		}
		builder.WriteString(sectionBreak)
	}
	return strings.TrimSpace(builder.String())
}

// RenderTreeOnly renders the tree of paths without surrounding whitespace.
func RenderTreeOnly(paths []string) string {
	return strings.TrimSpace(RenderTree(BuildTree(paths), ""))
}
