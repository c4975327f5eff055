package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/flatten/internal/types"
	"github.com/temirov/flatten/internal/utils"
)

const (
	// errorWalkScopeFormat is used when the scope root cannot be walked.
	errorWalkScopeFormat = "walking %s: %w"
	// errorUnsupportedScopeFormat is used for an unknown scope kind.
	errorUnsupportedScopeFormat = "unsupported scope kind %q"
)

// DirectoryPruner reports whether a directory, given relative to the root, should not be entered.
type DirectoryPruner func(relativeDirectory string) bool

// FileLister enumerates the candidate files of a scope as absolute paths.
// Directories are never returned.
type FileLister interface {
	ListFiles(ctx context.Context, root string, scope types.Scope, prune DirectoryPruner) ([]string, error)
}

// WalkLister lists files by walking the file system.
type WalkLister struct {
	Logger *zap.Logger
}

// ListFiles walks the scope and returns every non-directory entry in walk order.
func (lister WalkLister) ListFiles(ctx context.Context, root string, scope types.Scope, prune DirectoryPruner) ([]string, error) {
	logger := lister.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var walkRoot string
	switch scope.Kind {
	case types.ScopeFile:
		return []string{filepath.Clean(scope.Path)}, nil
	case types.ScopeSubtree:
		walkRoot = filepath.Clean(scope.Path)
	case types.ScopeWorkspace, "":
		walkRoot = filepath.Clean(root)
	default:
		return nil, fmt.Errorf(errorUnsupportedScopeFormat, scope.Kind)
	}

	var candidatePaths []string
	walkError := filepath.WalkDir(walkRoot, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		if contextError := ctx.Err(); contextError != nil {
			return contextError
		}
		if accessError != nil {
			if walkedPath == walkRoot {
				return accessError
			}
			logger.Debug("skipping inaccessible path", zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			if walkedPath != walkRoot && prune != nil && prune(utils.RelativePathOrSelf(walkedPath, root)) {
				return filepath.SkipDir
			}
			return nil
		}
		candidatePaths = append(candidatePaths, walkedPath)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorWalkScopeFormat, walkRoot, walkError)
	}
	return candidatePaths, nil
}

var _ FileLister = WalkLister{}

// isRegularFile reports whether info describes a regular file.
func isRegularFile(info fs.FileInfo) bool {
	return info != nil && info.Mode().IsRegular()
}
