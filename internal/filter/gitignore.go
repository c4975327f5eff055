package filter

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/flatten/internal/utils"
)

// LoadGitignorePatterns returns the lines of the .gitignore file at the root
// of rootDirectory. A missing or unreadable file yields no patterns.
//
// #nosec G304
func LoadGitignorePatterns(rootDirectory string, logger *zap.Logger) []string {
	gitignorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	fileBytes, readError := os.ReadFile(gitignorePath)
	if readError != nil {
		if !os.IsNotExist(readError) && logger != nil {
			logger.Debug("proceeding without .gitignore", zap.String("path", gitignorePath), zap.Error(readError))
		}
		return nil
	}
	return ParseIgnoreLines(fileBytes)
}

// ParseIgnoreLines splits raw gitignore bytes into patterns, dropping blank
// lines and comments while preserving order.
func ParseIgnoreLines(content []byte) []string {
	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := trimPatternLine(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// ComposePatterns builds the ordered rule set: the Git directory exclusion
// unless includeGit is set, then the configured patterns, then the gitignore patterns.
func ComposePatterns(configuredPatterns []string, gitignorePatterns []string, includeGit bool) []string {
	var composedPatterns []string
	if !includeGit {
		composedPatterns = append(composedPatterns, utils.GitDirectoryPattern)
	}
	for _, pattern := range configuredPatterns {
		trimmedPattern := trimPatternLine(strings.TrimLeft(strings.TrimRight(pattern, "\n"), " \t"))
		if trimmedPattern == "" {
			continue
		}
		composedPatterns = append(composedPatterns, trimmedPattern)
	}
	composedPatterns = append(composedPatterns, gitignorePatterns...)
	return composedPatterns
}
