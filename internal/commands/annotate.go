package commands

import (
	"strings"

	"github.com/temirov/flatten/internal/types"
)

const lineSeparator = "\n"

// AnnotateLines splits content strictly on "\n" and numbers the pieces from 1.
// Carriage returns stay in the line content, and content ending with a newline
// yields a final empty line, so joining the contents with "\n" restores the input.
func AnnotateLines(content string) []types.Line {
	segments := strings.Split(content, lineSeparator)
	lines := make([]types.Line, len(segments))
	for index, segment := range segments {
		lines[index] = types.Line{Number: index + 1, Content: segment}
	}
	return lines
}
