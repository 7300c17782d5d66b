package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/temirov/gitscan/internal/report"
	"github.com/temirov/gitscan/internal/repos/discovery"
	"github.com/temirov/gitscan/internal/repos/shared"
	pathutils "github.com/temirov/gitscan/internal/utils/path"
)

const (
	scanStartedLogMessageConstant   = "Scan started"
	scanCompletedLogMessageConstant = "Scan completed"
	logFieldRootPathConstant        = "root"
	logFieldExtensionsConstant      = "extensions"
	logFieldRepositoriesConstant    = "repositories"
	logFieldDirtyConstant           = "dirty"
	logFieldUnpushedConstant        = "unpushed"
	logFieldErrorsConstant          = "errors"
	logFieldUninitializedConstant   = "uninitialized"
	logFieldUnreadableConstant      = "unreadable"
)

// Options describes a single scan invocation.
type Options struct {
	RootPath       string
	Extensions     []string
	Exclude        []string
	CollapseNested bool
	Verbose        bool
	Format         report.Format
	ColorMode      report.ColorMode
	Icons          report.Icons
}

// Service validates the root, walks it, and renders the report.
type Service struct {
	logger        *zap.Logger
	fileSystem    shared.FileSystem
	statusChecker shared.RepositoryStatusChecker
	homeExpander  *pathutils.HomeExpander
	output        io.Writer
}

// NewService constructs a Service. A nil logger is replaced with a no-op logger.
func NewService(
	logger *zap.Logger,
	fileSystem shared.FileSystem,
	statusChecker shared.RepositoryStatusChecker,
	homeExpander *pathutils.HomeExpander,
	output io.Writer,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{
		logger:        logger,
		fileSystem:    fileSystem,
		statusChecker: statusChecker,
		homeExpander:  homeExpander,
		output:        output,
	}
}

// Run scans options.RootPath and writes the report. Findings never produce an error;
// only an invalid root, invalid report options, cancellation, or a failed write do.
func (service *Service) Run(executionContext context.Context, options Options) (report.Summary, error) {
	if service.fileSystem == nil {
		return report.Summary{}, discovery.ErrFileSystemNotConfigured
	}

	reporter, reporterError := report.NewReporter(report.Options{
		Format:    options.Format,
		ColorMode: options.ColorMode,
		Icons:     options.Icons,
		Verbose:   options.Verbose,
	})
	if reporterError != nil {
		return report.Summary{}, fmt.Errorf(reporterCreationErrorTemplateConstant, reporterError)
	}

	rootPath, rootError := service.resolveRoot(options.RootPath)
	if rootError != nil {
		return report.Summary{}, rootError
	}

	detector := discovery.NewExtensionDetector(options.Extensions)
	walker, walkerError := discovery.NewWalker(
		service.logger,
		service.fileSystem,
		service.statusChecker,
		detector,
		discovery.WalkerOptions{ExcludedDirectoryNames: options.Exclude, CollapseNested: options.CollapseNested},
	)
	if walkerError != nil {
		return report.Summary{}, walkerError
	}

	service.logger.Info(scanStartedLogMessageConstant,
		zap.String(logFieldRootPathConstant, rootPath),
		zap.Strings(logFieldExtensionsConstant, detector.Extensions()),
	)
	results, walkError := walker.Walk(executionContext, rootPath)
	if walkError != nil {
		return report.Summary{}, fmt.Errorf(walkFailedErrorTemplateConstant, rootPath, walkError)
	}

	if renderError := reporter.Render(service.output, rootPath, results); renderError != nil {
		return report.Summary{}, fmt.Errorf(reportRenderErrorTemplateConstant, renderError)
	}

	summary := report.Summarize(results)
	service.logger.Info(scanCompletedLogMessageConstant,
		zap.String(logFieldRootPathConstant, rootPath),
		zap.Int(logFieldRepositoriesConstant, summary.Repositories),
		zap.Int(logFieldDirtyConstant, summary.Dirty),
		zap.Int(logFieldUnpushedConstant, summary.Unpushed),
		zap.Int(logFieldErrorsConstant, summary.Errors),
		zap.Int(logFieldUninitializedConstant, summary.Uninitialized),
		zap.Int(logFieldUnreadableConstant, summary.Unreadable),
	)
	return summary, nil
}

func (service *Service) resolveRoot(requestedRoot string) (string, error) {
	expandedRoot := service.homeExpander.Expand(requestedRoot)

	absoluteRoot, absoluteError := service.fileSystem.Abs(expandedRoot)
	if absoluteError != nil {
		return "", InvalidPathError{Path: requestedRoot, Reason: rootPathUnresolvableReasonConstant, Cause: absoluteError}
	}

	rootInfo, statError := service.fileSystem.Stat(absoluteRoot)
	if statError != nil {
		reason := rootPathInaccessibleReasonConstant
		if errors.Is(statError, fs.ErrNotExist) {
			reason = rootPathMissingReasonConstant
		}
		return "", InvalidPathError{Path: absoluteRoot, Reason: reason, Cause: statError}
	}
	if !rootInfo.IsDir() {
		return "", InvalidPathError{Path: absoluteRoot, Reason: rootPathNotDirectoryReasonConstant}
	}
	return absoluteRoot, nil
}
