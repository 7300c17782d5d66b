package dependencies

import (
	"time"

	"go.uber.org/zap"

	"github.com/temirov/gitscan/internal/execshell"
	"github.com/temirov/gitscan/internal/gitrepo"
	"github.com/temirov/gitscan/internal/repos/filesystem"
	"github.com/temirov/gitscan/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default whose
// commands are bounded by commandTimeout. Observers only apply to the constructed executor.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, commandTimeout time.Duration, observers ...execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner(commandTimeout)
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveStatusChecker returns the provided checker or constructs one from the executor.
func ResolveStatusChecker(existing shared.RepositoryStatusChecker, executor shared.GitExecutor) (shared.RepositoryStatusChecker, error) {
	if existing != nil {
		return existing, nil
	}
	statusChecker, creationError := gitrepo.NewStatusChecker(executor)
	if creationError != nil {
		return nil, creationError
	}
	return statusChecker, nil
}
