package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/gitscan/internal/execshell"
)

const (
	// RepositoryMarkerNameConstant is the directory entry that identifies a repository root.
	RepositoryMarkerNameConstant = ".git"
	// RootRelativePathConstant labels the scan root in relative paths.
	RootRelativePathConstant = "."
)

// ResultKind classifies a discovered directory.
type ResultKind string

// Supported result kinds.
const (
	ResultKindRepository    ResultKind = "repository"
	ResultKindUninitialized ResultKind = "uninitialized"
	ResultKindUnreadable    ResultKind = "unreadable"
)

// RepositoryStatus enumerates the mutually exclusive repository classifications.
type RepositoryStatus string

// Supported repository statuses.
const (
	RepositoryStatusClean         RepositoryStatus = "clean"
	RepositoryStatusDirty         RepositoryStatus = "dirty"
	RepositoryStatusUnpushed      RepositoryStatus = "unpushed"
	RepositoryStatusError         RepositoryStatus = "error"
	RepositoryStatusNotApplicable RepositoryStatus = "n/a"
)

// Label renders the status the way reports print it.
func (status RepositoryStatus) Label() string {
	switch status {
	case RepositoryStatusClean:
		return "CLEAN"
	case RepositoryStatusDirty:
		return "DIRTY"
	case RepositoryStatusUnpushed:
		return "UNPUSHED"
	case RepositoryStatusError:
		return "ERROR"
	default:
		return "N/A"
	}
}

// StatusReport is the outcome of querying one repository.
type StatusReport struct {
	Status     RepositoryStatus
	Upstream   string
	AheadCount int
	Detail     string
}

// ScanResult describes one discovered directory. Values are not modified after the walker emits them.
type ScanResult struct {
	Path         string
	RelativePath string
	Kind         ResultKind
	Status       RepositoryStatus
	Upstream     string
	AheadCount   int
	Detail       string
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryStatusChecker queries the working tree and upstream state of a repository root.
type RepositoryStatusChecker interface {
	CheckStatus(executionContext context.Context, repositoryPath string) StatusReport
}

// SourceFileDetector reports whether directory entries include recognized source files.
type SourceFileDetector interface {
	ContainsSourceFiles(entries []fs.DirEntry) bool
}

// FileSystem exposes the filesystem operations required by the scan.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}
