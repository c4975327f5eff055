// Package commands contains the core logic for collecting workspace files.
package commands

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/flatten/internal/filter"
	"github.com/temirov/flatten/internal/types"
	"github.com/temirov/flatten/internal/utils"
)

// Collector turns a scope of the workspace into annotated file entries.
type Collector struct {
	Filter  *filter.PathFilter
	Gate    filter.SizeGate
	Lister  FileLister
	Workers int
	Logger  *zap.Logger
}

// NewCollector returns a Collector that walks the file system.
func NewCollector(pathFilter *filter.PathFilter, sizeGate filter.SizeGate, workers int, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Filter:  pathFilter,
		Gate:    sizeGate,
		Lister:  WalkLister{Logger: logger},
		Workers: workers,
		Logger:  logger,
	}
}

// Collect enumerates the scope under root, drops excluded, oversized and
// unreadable files, and annotates the rest. The result is in enumeration
// order; callers sort it before rendering.
func (collector *Collector) Collect(ctx context.Context, root string, scope types.Scope) ([]types.FileEntry, error) {
	candidatePaths, listError := collector.listCandidates(ctx, root, scope)
	if listError != nil {
		return nil, listError
	}

	results := make([]*types.FileEntry, len(candidatePaths))
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(collector.workerCount())
	for candidateIndex, candidatePath := range candidatePaths {
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			results[candidateIndex] = collector.readEntry(root, candidatePath)
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}

	entries := make([]types.FileEntry, 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

// CollectPaths returns the "/"-prefixed root-relative paths of every file in
// scope that the filter keeps. File sizes and contents are not inspected.
func (collector *Collector) CollectPaths(ctx context.Context, root string, scope types.Scope) ([]string, error) {
	candidatePaths, listError := collector.listCandidates(ctx, root, scope)
	if listError != nil {
		return nil, listError
	}
	entryPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		entryPaths = append(entryPaths, utils.EntryPath(utils.RelativePathOrSelf(candidatePath, root)))
	}
	return entryPaths, nil
}

// listCandidates enumerates the scope and applies the path filter.
func (collector *Collector) listCandidates(ctx context.Context, root string, scope types.Scope) ([]string, error) {
	lister := collector.Lister
	if lister == nil {
		lister = WalkLister{Logger: collector.logger()}
	}
	listedPaths, listError := lister.ListFiles(ctx, root, scope, collector.Filter.IsDirectoryExcluded)
	if listError != nil {
		return nil, listError
	}
	candidatePaths := make([]string, 0, len(listedPaths))
	for _, listedPath := range listedPaths {
		relativePath := utils.RelativePathOrSelf(listedPath, root)
		if !utils.IsWithinRoot(relativePath) || relativePath == "." {
			collector.logger().Debug("skipping path outside root", zap.String("path", listedPath))
			continue
		}
		if collector.Filter.IsExcluded(relativePath) || collector.hasExcludedAncestor(relativePath) {
			continue
		}
		candidatePaths = append(candidatePaths, listedPath)
	}
	return candidatePaths, nil
}

// hasExcludedAncestor reports whether any directory between the root and the
// parent of relativePath is excluded. Scoped listings start below the root,
// so the walk never gets the chance to prune those directories.
func (collector *Collector) hasExcludedAncestor(relativePath string) bool {
	segments := strings.Split(relativePath, "/")
	for segmentCount := 1; segmentCount < len(segments); segmentCount++ {
		if collector.Filter.IsDirectoryExcluded(strings.Join(segments[:segmentCount], "/")) {
			return true
		}
	}
	return false
}

// readEntry stats, size-checks, reads and annotates one file. It returns nil
// when the file is skipped.
//
// #nosec G304
func (collector *Collector) readEntry(root string, candidatePath string) *types.FileEntry {
	logger := collector.logger()
	fileInfo, statError := os.Stat(candidatePath)
	if statError != nil {
		logger.Debug("skipping file", zap.String("path", candidatePath), zap.Error(statError))
		return nil
	}
	if !isRegularFile(fileInfo) {
		return nil
	}
	if !collector.Gate.Permits(fileInfo.Size()) {
		logger.Debug("skipping oversized file",
			zap.String("path", candidatePath),
			zap.String("size", utils.FormatFileSize(fileInfo.Size())),
			zap.Int("limitKB", collector.Gate.LimitKB()))
		return nil
	}
	fileBytes, readError := os.ReadFile(candidatePath)
	if readError != nil {
		logger.Debug("skipping unreadable file", zap.String("path", candidatePath), zap.Error(readError))
		return nil
	}
	content, decoded := utils.DecodeText(fileBytes)
	if !decoded {
		logger.Debug("skipping undecodable file", zap.String("path", candidatePath))
		return nil
	}
	relativePath := utils.RelativePathOrSelf(filepath.Clean(candidatePath), root)
	return &types.FileEntry{
		Path:  utils.EntryPath(relativePath),
		Lines: AnnotateLines(content),
	}
}

func (collector *Collector) workerCount() int {
	if collector.Workers > 0 {
		return collector.Workers
	}
	return runtime.NumCPU()
}

func (collector *Collector) logger() *zap.Logger {
	if collector.Logger == nil {
		return zap.NewNop()
	}
	return collector.Logger
}
