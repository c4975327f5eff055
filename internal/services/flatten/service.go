// Package flatten orchestrates one invocation: it resolves the workspace and
// scope, builds the filter and collector, assembles the text and delivers it
// to the clipboard or an output stream.
package flatten

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/flatten/internal/commands"
	"github.com/temirov/flatten/internal/filter"
	"github.com/temirov/flatten/internal/output"
	"github.com/temirov/flatten/internal/services/clipboard"
	"github.com/temirov/flatten/internal/tokenizer"
	"github.com/temirov/flatten/internal/types"
	"github.com/temirov/flatten/internal/utils"
)

var (
	// ErrNoWorkspace reports that the root directory is missing or not a directory.
	ErrNoWorkspace = errors.New("no workspace opened")
	// ErrNoResourceSelected reports that the requested scope does not name a file or directory under the root.
	ErrNoResourceSelected = errors.New("no resource selected")
	// ErrClipboard reports that the assembled text could not be written to the clipboard.
	ErrClipboard = errors.New("clipboard write failed")
)

const (
	workspaceCopiedMessage = "Workspace flattened and copied to clipboard!"
	treeCopiedMessage      = "Directory structure copied to clipboard!"
	nothingToCopyMessage   = "Nothing to copy: every file in scope was excluded"

	errorWorkspaceFormat      = "%w: %s"
	errorScopeFormat          = "%w: %s"
	errorClipboardFormat      = "%w: %v"
	errorWriteOutputFormat    = "write output: %w"
	errorTokenizerSetupFormat = "initialize tokenizer: %w"
)

// CounterFactory creates token counters on demand.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Request describes one invocation.
type Request struct {
	// Root is the workspace directory. Relative paths resolve against the working directory.
	Root string
	// ScopePath selects a subtree or a single file; empty selects the whole workspace.
	// Relative paths resolve against Root.
	ScopePath string
	Settings  types.Settings
}

// Result reports what an invocation produced.
type Result struct {
	Text       string
	Files      int
	Copied     bool
	Tokens     int
	TokenModel string
}

// Service runs flatten invocations. Each call builds its own filter and
// collector, so a Service can be reused.
type Service struct {
	Copier     clipboard.Copier
	Output     io.Writer
	NewCounter CounterFactory
	Logger     *zap.Logger
}

// NewService returns a Service writing to the system clipboard or stdout.
func NewService(logger *zap.Logger) *Service {
	return &Service{
		Copier:     clipboard.NewService(),
		Output:     os.Stdout,
		NewCounter: tokenizer.NewCounter,
		Logger:     logger,
	}
}

// Flatten produces the tree followed by the numbered contents of every kept file.
func (service *Service) Flatten(ctx context.Context, request Request) (Result, error) {
	root, scope, collector, prepareError := service.prepare(request)
	if prepareError != nil {
		return Result{}, prepareError
	}
	entries, collectError := collector.Collect(ctx, root, scope)
	if collectError != nil {
		return Result{}, collectError
	}
	if len(entries) == 0 {
		service.logger().Info(nothingToCopyMessage, zap.String("root", root))
	}
	result := Result{Text: output.Assemble(entries), Files: len(entries)}
	return service.deliver(result, request.Settings, workspaceCopiedMessage)
}

// FlattenTree produces only the directory tree of the kept files.
func (service *Service) FlattenTree(ctx context.Context, request Request) (Result, error) {
	root, scope, collector, prepareError := service.prepare(request)
	if prepareError != nil {
		return Result{}, prepareError
	}
	entryPaths, collectError := collector.CollectPaths(ctx, root, scope)
	if collectError != nil {
		return Result{}, collectError
	}
	result := Result{Text: output.RenderTreeOnly(entryPaths), Files: len(entryPaths)}
	return service.deliver(result, request.Settings, treeCopiedMessage)
}

// prepare resolves the workspace and scope and builds a collector for them.
func (service *Service) prepare(request Request) (string, types.Scope, *commands.Collector, error) {
	root, rootError := ResolveWorkspace(request.Root)
	if rootError != nil {
		return "", types.Scope{}, nil, rootError
	}
	scope, scopeError := ResolveScope(root, request.ScopePath)
	if scopeError != nil {
		return "", types.Scope{}, nil, scopeError
	}

	settings := request.Settings
	var gitignorePatterns []string
	if settings.UseGitignore {
		gitignorePatterns = filter.LoadGitignorePatterns(root, service.logger())
	}
	patterns := filter.ComposePatterns(settings.IgnorePatterns, gitignorePatterns, settings.IncludeGit)
	service.logger().Debug("composed ignore rules",
		zap.String("root", root),
		zap.String("scope", string(scope.Kind)),
		zap.Strings("patterns", patterns))

	collector := commands.NewCollector(
		filter.NewPathFilter(patterns),
		filter.NewSizeGate(settings.MaxFileSizeKB),
		settings.Workers,
		service.logger(),
	)
	return root, scope, collector, nil
}

// deliver attaches a token estimate when requested and hands the text to the
// clipboard or the output stream. The text is complete before either is touched.
func (service *Service) deliver(result Result, settings types.Settings, copiedMessage string) (Result, error) {
	if settings.TokensEnabled {
		tokens, model, tokenError := service.countTokens(result.Text, settings.TokenModel)
		if tokenError != nil {
			return Result{}, tokenError
		}
		result.Tokens = tokens
		result.TokenModel = model
	}

	if settings.Clipboard {
		copier := service.Copier
		if copier == nil {
			copier = clipboard.NewService()
		}
		if copyError := copier.Copy(result.Text); copyError != nil {
			return Result{}, fmt.Errorf(errorClipboardFormat, ErrClipboard, copyError)
		}
		result.Copied = true
		fields := []zap.Field{zap.Int("files", result.Files), zap.String("size", utils.FormatFileSize(int64(len(result.Text))))}
		if settings.TokensEnabled {
			fields = append(fields, zap.Int("tokens", result.Tokens), zap.String("model", result.TokenModel))
		}
		service.logger().Info(copiedMessage, fields...)
		return result, nil
	}

	writer := service.Output
	if writer == nil {
		writer = os.Stdout
	}
	if _, writeError := fmt.Fprintln(writer, result.Text); writeError != nil {
		return Result{}, fmt.Errorf(errorWriteOutputFormat, writeError)
	}
	if settings.TokensEnabled {
		service.logger().Info("token estimate", zap.Int("tokens", result.Tokens), zap.String("model", result.TokenModel))
	}
	return result, nil
}

func (service *Service) countTokens(text string, model string) (int, string, error) {
	newCounter := service.NewCounter
	if newCounter == nil {
		newCounter = tokenizer.NewCounter
	}
	counter, resolvedModel, counterError := newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		return 0, "", fmt.Errorf(errorTokenizerSetupFormat, counterError)
	}
	tokens, countError := tokenizer.CountText(counter, text)
	if countError != nil {
		return 0, "", countError
	}
	return tokens, resolvedModel, nil
}

func (service *Service) logger() *zap.Logger {
	if service == nil || service.Logger == nil {
		return zap.NewNop()
	}
	return service.Logger
}

// ResolveWorkspace returns the absolute, cleaned root or ErrNoWorkspace.
func ResolveWorkspace(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf(errorWorkspaceFormat, ErrNoWorkspace, "root directory is empty")
	}
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return "", fmt.Errorf(errorWorkspaceFormat, ErrNoWorkspace, absoluteError.Error())
	}
	cleanRoot := filepath.Clean(absoluteRoot)
	rootInfo, statError := os.Stat(cleanRoot)
	if statError != nil {
		return "", fmt.Errorf(errorWorkspaceFormat, ErrNoWorkspace, statError.Error())
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(errorWorkspaceFormat, ErrNoWorkspace, cleanRoot+" is not a directory")
	}
	return cleanRoot, nil
}

// ResolveScope turns scopePath into a Scope under root. An empty path, or one
// naming the root itself, selects the whole workspace.
func ResolveScope(root string, scopePath string) (types.Scope, error) {
	if scopePath == "" {
		return types.WorkspaceScope(), nil
	}
	absoluteScope := utils.ResolveAgainst(root, scopePath)

	relativeScope := utils.RelativePathOrSelf(absoluteScope, root)
	if !utils.IsWithinRoot(relativeScope) {
		return types.Scope{}, fmt.Errorf(errorScopeFormat, ErrNoResourceSelected, scopePath+" is outside "+root)
	}
	if relativeScope == "." {
		return types.WorkspaceScope(), nil
	}

	scopeInfo, statError := os.Stat(absoluteScope)
	if statError != nil {
		return types.Scope{}, fmt.Errorf(errorScopeFormat, ErrNoResourceSelected, statError.Error())
	}
	switch {
	case scopeInfo.IsDir():
		return types.Scope{Kind: types.ScopeSubtree, Path: absoluteScope}, nil
	case scopeInfo.Mode().IsRegular():
		return types.Scope{Kind: types.ScopeFile, Path: absoluteScope}, nil
	default:
		return types.Scope{}, fmt.Errorf(errorScopeFormat, ErrNoResourceSelected, scopePath+" is neither a file nor a directory")
	}
}
