package scan

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitscan/internal/execshell"
	"github.com/temirov/gitscan/internal/report"
	"github.com/temirov/gitscan/internal/repos/dependencies"
	"github.com/temirov/gitscan/internal/repos/shared"
	"github.com/temirov/gitscan/internal/ui"
	"github.com/temirov/gitscan/internal/utils"
	pathutils "github.com/temirov/gitscan/internal/utils/path"
)

const (
	commandUseConstant              = "gitscan [path]"
	commandShortDescriptionConstant = "Report git repository status and uninitialized source directories"
	commandLongDescriptionConstant  = "gitscan walks a directory tree, reports every git repository as CLEAN, DIRTY, UNPUSHED, or ERROR, and lists directories that hold source files but no repository."
	commandExampleConstant          = "  gitscan ~/Development\n  gitscan --verbose --format yaml ."
	// VerboseFlagName narrates git queries and appends details to report lines.
	VerboseFlagName = "verbose"
	// FormatFlagName selects the report format.
	FormatFlagName = "format"
	// ColorFlagName selects icon colorization.
	ColorFlagName                      = "color"
	verboseFlagShorthandConstant       = "v"
	verboseFlagUsageConstant           = "Show git activity and per-entry details."
	formatFlagUsageConstant            = "Report format (text or yaml)."
	colorFlagUsageConstant             = "Colorize icons (auto, always, or never)."
	maximumPositionalArgumentsConstant = 1
	rootArgumentIndexConstant          = 0
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current scan configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
	GitExecutor           shared.GitExecutor
	StatusChecker         shared.RepositoryStatusChecker
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the cobra command for repository scans.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Example:       commandExampleConstant,
		Args:          cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	command.Flags().BoolP(VerboseFlagName, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)
	command.Flags().String(FormatFlagName, string(report.FormatText), formatFlagUsageConstant)
	command.Flags().String(ColorFlagName, string(report.ColorModeAuto), colorFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	verbose, _ := command.Flags().GetBool(VerboseFlagName)

	options := Options{
		RootPath:       configuration.Root,
		Extensions:     configuration.Extensions,
		Exclude:        configuration.Exclude,
		CollapseNested: configuration.CollapseNested,
		Verbose:        verbose,
		Format:         report.Format(configuration.Format),
		ColorMode:      report.ColorMode(configuration.Color),
		Icons:          configuration.Icons,
	}
	if len(arguments) > rootArgumentIndexConstant {
		options.RootPath = arguments[rootArgumentIndexConstant]
	}
	if command.Flags().Changed(FormatFlagName) {
		formatValue, _ := command.Flags().GetString(FormatFlagName)
		options.Format = report.Format(formatValue)
	}
	if command.Flags().Changed(ColorFlagName) {
		colorValue, _ := command.Flags().GetString(ColorFlagName)
		options.ColorMode = report.ColorMode(colorValue)
	}

	logger := builder.resolveLogger()
	var observers []execshell.CommandEventObserver
	if verbose {
		narrationLogger := utils.NewLoggerFactory().CreateNarrationLogger(command.ErrOrStderr())
		observers = append(observers, ui.NewConsoleCommandEventLogger(narrationLogger))
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, configuration.GitTimeout, observers...)
	if executorError != nil {
		return executorError
	}
	statusChecker, checkerError := dependencies.ResolveStatusChecker(builder.StatusChecker, gitExecutor)
	if checkerError != nil {
		return checkerError
	}

	homeExpander := builder.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	service := NewService(logger, dependencies.ResolveFileSystem(builder.FileSystem), statusChecker, homeExpander, command.OutOrStdout())
	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
