package discovery

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitscan/internal/repos/shared"
)

const (
	fileSystemNotConfiguredMessageConstant    = "filesystem not configured"
	statusCheckerNotConfiguredMessageConstant = "repository status checker not configured"
	detectorNotConfiguredMessageConstant      = "source file detector not configured"
	unreadableDirectoryLogMessageConstant     = "Skipping unreadable directory"
	repositoryFoundLogMessageConstant         = "Repository classified"
	uninitializedFoundLogMessageConstant      = "Uninitialized directory found"
	excludedDirectoryLogMessageConstant       = "Skipping excluded directory"
	danglingLinkLogMessageConstant            = "Ignoring unresolvable symbolic link"
	walkCompletedLogMessageConstant           = "Directory walk completed"
	logFieldDirectoryConstant                 = "directory"
	logFieldLinkConstant                      = "link"
	logFieldStatusConstant                    = "status"
	logFieldRootConstant                      = "root"
	logFieldResultCountConstant               = "result_count"
)

var (
	// ErrFileSystemNotConfigured indicates the walker was constructed without a filesystem.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
	// ErrStatusCheckerNotConfigured indicates the walker was constructed without a status checker.
	ErrStatusCheckerNotConfigured = errors.New(statusCheckerNotConfiguredMessageConstant)
	// ErrDetectorNotConfigured indicates the walker was constructed without a source file detector.
	ErrDetectorNotConfigured = errors.New(detectorNotConfiguredMessageConstant)
)

// WalkerOptions tunes traversal.
type WalkerOptions struct {
	ExcludedDirectoryNames []string
	CollapseNested         bool
}

// Walker traverses a directory tree and classifies the directories it finds.
type Walker struct {
	logger         *zap.Logger
	fileSystem     shared.FileSystem
	statusChecker  shared.RepositoryStatusChecker
	detector       shared.SourceFileDetector
	excludedNames  map[string]struct{}
	collapseNested bool
}

// NewWalker constructs a Walker. A nil logger is replaced with a no-op logger.
func NewWalker(
	logger *zap.Logger,
	fileSystem shared.FileSystem,
	statusChecker shared.RepositoryStatusChecker,
	detector shared.SourceFileDetector,
	options WalkerOptions,
) (*Walker, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if statusChecker == nil {
		return nil, ErrStatusCheckerNotConfigured
	}
	if detector == nil {
		return nil, ErrDetectorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	excludedNames := make(map[string]struct{}, len(options.ExcludedDirectoryNames))
	for _, excludedName := range options.ExcludedDirectoryNames {
		trimmedName := strings.TrimSpace(excludedName)
		if len(trimmedName) == 0 {
			continue
		}
		excludedNames[trimmedName] = struct{}{}
	}

	return &Walker{
		logger:         logger,
		fileSystem:     fileSystem,
		statusChecker:  statusChecker,
		detector:       detector,
		excludedNames:  excludedNames,
		collapseNested: options.CollapseNested,
	}, nil
}

type walkState struct {
	rootPath string
	results  []shared.ScanResult
}

// Walk classifies rootPath and every directory below it in lexical pre-order.
// Descent stops at repository roots. The root itself is never reported as uninitialized.
func (walker *Walker) Walk(executionContext context.Context, rootPath string) ([]shared.ScanResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	state := &walkState{rootPath: filepath.Clean(rootPath)}
	if visitError := walker.visit(executionContext, state, state.rootPath, false); visitError != nil {
		return nil, visitError
	}

	walker.logger.Debug(walkCompletedLogMessageConstant,
		zap.String(logFieldRootConstant, state.rootPath),
		zap.Int(logFieldResultCountConstant, len(state.results)),
	)
	return state.results, nil
}

func (walker *Walker) visit(executionContext context.Context, state *walkState, directoryPath string, withinUninitialized bool) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	entries, readError := walker.fileSystem.ReadDir(directoryPath)
	if readError != nil {
		walker.logger.Warn(unreadableDirectoryLogMessageConstant, zap.String(logFieldDirectoryConstant, directoryPath), zap.Error(readError))
		state.results = append(state.results, shared.ScanResult{
			Path:         directoryPath,
			RelativePath: state.relativePath(directoryPath),
			Kind:         shared.ResultKindUnreadable,
			Status:       shared.RepositoryStatusError,
			Detail:       readError.Error(),
		})
		return nil
	}

	sortedEntries := make([]fs.DirEntry, len(entries))
	copy(sortedEntries, entries)
	sort.Slice(sortedEntries, func(first int, second int) bool {
		return sortedEntries[first].Name() < sortedEntries[second].Name()
	})

	if containsRepositoryMarker(sortedEntries) {
		statusReport := walker.statusChecker.CheckStatus(executionContext, directoryPath)
		walker.logger.Debug(repositoryFoundLogMessageConstant,
			zap.String(logFieldDirectoryConstant, directoryPath),
			zap.String(logFieldStatusConstant, string(statusReport.Status)),
		)
		state.results = append(state.results, shared.ScanResult{
			Path:         directoryPath,
			RelativePath: state.relativePath(directoryPath),
			Kind:         shared.ResultKindRepository,
			Status:       statusReport.Status,
			Upstream:     statusReport.Upstream,
			AheadCount:   statusReport.AheadCount,
			Detail:       statusReport.Detail,
		})
		return nil
	}

	childrenWithinUninitialized := withinUninitialized
	suppressed := walker.collapseNested && withinUninitialized
	if directoryPath != state.rootPath && !suppressed && walker.detector.ContainsSourceFiles(walker.resolveLinks(directoryPath, sortedEntries)) {
		walker.logger.Debug(uninitializedFoundLogMessageConstant, zap.String(logFieldDirectoryConstant, directoryPath))
		state.results = append(state.results, shared.ScanResult{
			Path:         directoryPath,
			RelativePath: state.relativePath(directoryPath),
			Kind:         shared.ResultKindUninitialized,
			Status:       shared.RepositoryStatusNotApplicable,
		})
		childrenWithinUninitialized = true
	}

	for _, entry := range sortedEntries {
		if !entry.IsDir() {
			continue
		}
		if _, excluded := walker.excludedNames[entry.Name()]; excluded {
			walker.logger.Debug(excludedDirectoryLogMessageConstant, zap.String(logFieldDirectoryConstant, filepath.Join(directoryPath, entry.Name())))
			continue
		}
		childPath := filepath.Join(directoryPath, entry.Name())
		if visitError := walker.visit(executionContext, state, childPath, childrenWithinUninitialized); visitError != nil {
			return visitError
		}
	}
	return nil
}

// resolveLinks replaces symbolic links with their targets' entries so the detector sees what a
// link points at. Unresolvable links are dropped. Descent still uses the unresolved entries.
func (walker *Walker) resolveLinks(directoryPath string, entries []fs.DirEntry) []fs.DirEntry {
	resolvedEntries := make([]fs.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink == 0 {
			resolvedEntries = append(resolvedEntries, entry)
			continue
		}
		linkPath := filepath.Join(directoryPath, entry.Name())
		targetInfo, statError := walker.fileSystem.Stat(linkPath)
		if statError != nil {
			walker.logger.Debug(danglingLinkLogMessageConstant, zap.String(logFieldLinkConstant, linkPath), zap.Error(statError))
			continue
		}
		resolvedEntries = append(resolvedEntries, linkTargetEntry{name: entry.Name(), targetInfo: targetInfo})
	}
	return resolvedEntries
}

// linkTargetEntry keeps the link's own name while reporting the target's type.
type linkTargetEntry struct {
	name       string
	targetInfo fs.FileInfo
}

func (entry linkTargetEntry) Name() string               { return entry.name }
func (entry linkTargetEntry) IsDir() bool                { return entry.targetInfo.IsDir() }
func (entry linkTargetEntry) Type() fs.FileMode          { return entry.targetInfo.Mode().Type() }
func (entry linkTargetEntry) Info() (fs.FileInfo, error) { return entry.targetInfo, nil }

func (state *walkState) relativePath(directoryPath string) string {
	if directoryPath == state.rootPath {
		return shared.RootRelativePathConstant
	}
	relativePath, relativeError := filepath.Rel(state.rootPath, directoryPath)
	if relativeError != nil {
		return directoryPath
	}
	return relativePath
}

func containsRepositoryMarker(entries []fs.DirEntry) bool {
	for _, entry := range entries {
		if entry.Name() == shared.RepositoryMarkerNameConstant {
			return true
		}
	}
	return false
}
