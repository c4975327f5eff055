// Package types defines every cross‑package data structure used by the flatten CLI.
package types

const (
	CommandCopy = "copy"
	CommandTree = "tree"

	// DefaultMaxFileSizeKB is the size limit applied when none is configured.
	DefaultMaxFileSizeKB = 1024
	// DefaultTokenizerModel is the model used when token estimates are requested.
	DefaultTokenizerModel = "gpt-4o"
)

// ScopeKind identifies which part of the workspace is flattened.
type ScopeKind string

const (
	ScopeWorkspace ScopeKind = "workspace"
	ScopeSubtree   ScopeKind = "subtree"
	ScopeFile      ScopeKind = "file"
)

// Scope selects the candidates for a single invocation. Path is absolute and
// empty for ScopeWorkspace.
type Scope struct {
	Kind ScopeKind
	Path string
}

// WorkspaceScope returns the scope covering the entire root.
func WorkspaceScope() Scope {
	return Scope{Kind: ScopeWorkspace}
}

// Line is a single numbered line of a file.
type Line struct {
	Number  int
	Content string
}

// FileEntry is one collected file. Path is root-relative, slash separated,
// and starts with "/".
type FileEntry struct {
	Path  string
	Lines []Line
}

// Settings carries the resolved configuration for one invocation.
type Settings struct {
	IgnorePatterns []string
	UseGitignore   bool
	IncludeGit     bool
	MaxFileSizeKB  int
	Workers        int
	Clipboard      bool
	TokensEnabled  bool
	TokenModel     string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		UseGitignore:  true,
		MaxFileSizeKB: DefaultMaxFileSizeKB,
		TokenModel:    DefaultTokenizerModel,
	}
}
