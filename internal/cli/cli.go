// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/flatten/internal/config"
	"github.com/temirov/flatten/internal/services/flatten"
	"github.com/temirov/flatten/internal/types"
	"github.com/temirov/flatten/internal/utils"
)

const (
	rootFlagName         = "root"
	ignoreFlagName       = "ignore"
	useGitignoreFlagName = "use-gitignore"
	maxSizeFlagName      = "max-size-kb"
	includeGitFlagName   = "include-git"
	copyFlagName         = "copy"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	workersFlagName      = "workers"
	configFlagName       = "config"
	scopeFlagName        = "scope"
	globalFlagName       = "global"
	forceFlagName        = "force"

	rootUse              = "flatten"
	rootShortDescription = "flatten a workspace into one annotated text snapshot"
	rootLongDescription  = `flatten renders the directory tree of a workspace followed by the contents
of every kept file, each line tagged with its line number.
Patterns use .gitignore syntax. Settings come from ~/.flatten/.flatten.yaml,
then ./.flatten.yaml, then flags set on the command line.`
	versionTemplate = "flatten version: {{.Version}}\n"

	copyUse              = "copy"
	treeUse              = "tree"
	initUse              = "init"
	copyAlias            = "c"
	treeAlias            = "t"
	copyShortDescription = "flatten the tree and numbered file contents (" + copyAlias + ")"
	treeShortDescription = "render the directory tree only (" + treeAlias + ")"
	initShortDescription = "write a default configuration file"

	copyUsageExample = `  # Flatten the current directory to stdout
  flatten copy

  # Flatten one subtree of a project to the clipboard
  flatten copy --root ~/src/app --scope internal --copy

  # Ignore logs but keep one of them
  flatten c --ignore '*.log' --ignore '!keep.log'`
	treeUsageExample = `  # Copy the directory structure to the clipboard
  flatten tree --copy`

	rootFlagDescription         = "workspace root directory"
	ignoreFlagDescription       = "ignore pattern in .gitignore syntax (repeatable, later patterns win)"
	useGitignoreFlagDescription = "apply the root .gitignore"
	maxSizeFlagDescription      = "skip files larger than this many KiB"
	includeGitFlagDescription   = "include the .git directory"
	copyFlagDescription         = "copy the result to the clipboard instead of printing it"
	tokensFlagDescription       = "log a token estimate of the result"
	modelFlagDescription        = "tokenizer model used for the token estimate"
	workersFlagDescription      = "number of concurrent file reads (0 uses all CPUs)"
	configFlagDescription       = "explicit configuration file replacing ./.flatten.yaml"
	scopeFlagDescription        = "file or directory under the root to flatten"
	globalFlagDescription       = "write the configuration under the home directory"
	forceFlagDescription        = "overwrite an existing configuration file"

	defaultRootPath                 = "."
	configurationWrittenMessage     = "configuration written"
	workingDirectoryErrorFormat     = "unable to determine working directory: %w"
	loadConfigurationErrorFormat    = "load configuration: %w"
	initializeConfigurationErrorFmt = "initialize configuration: %w"
)

// applicationOptions stores the values of the persistent flags.
type applicationOptions struct {
	root            string
	ignorePatterns  []string
	useGitignore    bool
	maxSizeKB       int
	includeGit      bool
	copyToClipboard bool
	tokens          bool
	model           string
	workers         int
	configPath      string
}

// dependencies carries what the commands need from the process.
type dependencies struct {
	service          *flatten.Service
	logger           *zap.Logger
	workingDirectory string
}

// Execute runs the flatten application with the process arguments.
func Execute(ctx context.Context, logger *zap.Logger) error {
	workingDirectory, err := os.Getwd()
	if err != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	rootCommand := createRootCommand(dependencies{
		service:          flatten.NewService(logger),
		logger:           logger,
		workingDirectory: workingDirectory,
	})
	rootCommand.SetArgs(normalizeArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var options applicationOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)

	flagSet := rootCommand.PersistentFlags()
	flagSet.StringVar(&options.root, rootFlagName, defaultRootPath, rootFlagDescription)
	flagSet.StringArrayVar(&options.ignorePatterns, ignoreFlagName, nil, ignoreFlagDescription)
	addToggleFlag(flagSet, &options.useGitignore, useGitignoreFlagName, true, useGitignoreFlagDescription)
	flagSet.IntVar(&options.maxSizeKB, maxSizeFlagName, types.DefaultMaxFileSizeKB, maxSizeFlagDescription)
	addToggleFlag(flagSet, &options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
	addToggleFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	addToggleFlag(flagSet, &options.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, types.DefaultTokenizerModel, modelFlagDescription)
	flagSet.IntVar(&options.workers, workersFlagName, 0, workersFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(
		createFlattenCommand(deps, &options, types.CommandCopy),
		createFlattenCommand(deps, &options, types.CommandTree),
		createInitCommand(deps),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createFlattenCommand returns the copy or tree subcommand.
func createFlattenCommand(deps dependencies, options *applicationOptions, commandName string) *cobra.Command {
	var scopePath string

	flattenCommand := &cobra.Command{
		Use:     copyUse,
		Aliases: []string{copyAlias},
		Short:   copyShortDescription,
		Example: copyUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, err := resolveSettings(command, deps, *options)
			if err != nil {
				return err
			}
			request := flatten.Request{
				Root:      resolveRoot(deps.workingDirectory, options.root),
				ScopePath: scopePath,
				Settings:  settings,
			}
			if commandName == types.CommandTree {
				_, err = deps.service.FlattenTree(command.Context(), request)
				return err
			}
			_, err = deps.service.Flatten(command.Context(), request)
			return err
		},
	}
	if commandName == types.CommandTree {
		flattenCommand.Use = treeUse
		flattenCommand.Aliases = []string{treeAlias}
		flattenCommand.Short = treeShortDescription
		flattenCommand.Example = treeUsageExample
	}
	flattenCommand.Flags().StringVar(&scopePath, scopeFlagName, "", scopeFlagDescription)
	return flattenCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: deps.workingDirectory,
			})
			if err != nil {
				return fmt.Errorf(initializeConfigurationErrorFmt, err)
			}
			if deps.logger != nil {
				deps.logger.Info(configurationWrittenMessage, zap.String("path", path))
			}
			return nil
		},
	}
	addToggleFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	addToggleFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveSettings merges the configuration files with the flags set on the command line.
func resolveSettings(command *cobra.Command, deps dependencies, options applicationOptions) (types.Settings, error) {
	loaded, err := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: deps.workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if err != nil {
		return types.Settings{}, fmt.Errorf(loadConfigurationErrorFormat, err)
	}
	settings := loaded.Settings()

	flags := command.Flags()
	if flags.Changed(ignoreFlagName) {
		settings.IgnorePatterns = append([]string(nil), options.ignorePatterns...)
	}
	if flags.Changed(useGitignoreFlagName) {
		settings.UseGitignore = options.useGitignore
	}
	if flags.Changed(maxSizeFlagName) && options.maxSizeKB > 0 {
		settings.MaxFileSizeKB = options.maxSizeKB
	}
	if flags.Changed(includeGitFlagName) {
		settings.IncludeGit = options.includeGit
	}
	if flags.Changed(copyFlagName) {
		settings.Clipboard = options.copyToClipboard
	}
	if flags.Changed(tokensFlagName) {
		settings.TokensEnabled = options.tokens
	}
	if flags.Changed(modelFlagName) && options.model != "" {
		settings.TokenModel = options.model
	}
	if flags.Changed(workersFlagName) {
		settings.Workers = options.workers
	}
	return settings, nil
}

func resolveRoot(workingDirectory, root string) string {
	if root == "" {
		root = defaultRootPath
	}
	return utils.ResolveAgainst(workingDirectory, root)
}
