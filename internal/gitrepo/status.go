package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/temirov/gitscan/internal/execshell"
	"github.com/temirov/gitscan/internal/repos/shared"
)

const (
	gitStatusSubcommandConstant         = "status"
	gitPorcelainFlagConstant            = "--porcelain"
	gitRevParseSubcommandConstant       = "rev-parse"
	gitAbbrevRefFlagConstant            = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant     = "--symbolic-full-name"
	gitUpstreamReferenceConstant        = "@{u}"
	gitRevListSubcommandConstant        = "rev-list"
	gitCountFlagConstant                = "--count"
	gitAheadRangeConstant               = "@{u}..HEAD"
	gitOptionalLocksVariableConstant    = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant    = "0"
	gitDirectoryVariableConstant        = "GIT_DIR"
	gitWorkTreeVariableConstant         = "GIT_WORK_TREE"
	gitCeilingDirectoriesConstant       = "GIT_CEILING_DIRECTORIES"
	porcelainUntrackedMarkerConstant    = "??"
	porcelainIgnoredMarkerConstant      = "!!"
	porcelainUnmodifiedMarkerConstant   = ' '
	porcelainStatusCodeLengthConstant   = 2
	gitExecutorNotConfiguredMessage     = "git executor not configured"
	dirtyDetailTemplateConstant         = "%d staged, %d unstaged, %d untracked"
	unpushedDetailTemplateConstant      = "%d commit(s) ahead of %s"
	upToDateDetailTemplateConstant      = "up to date with %s"
	noUpstreamDetailConstant            = "no upstream configured"
	unexpectedCountTemplateConstant     = "unexpected rev-list output %q"
	unexpectedPorcelainTemplateConstant = "unexpected status output %q"
)

// ErrGitExecutorNotConfigured indicates the checker was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessage)

// StatusChecker derives a repository status from git porcelain output and upstream comparison.
type StatusChecker struct {
	executor shared.GitExecutor
}

// NewStatusChecker constructs a StatusChecker backed by the provided executor.
func NewStatusChecker(executor shared.GitExecutor) (*StatusChecker, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &StatusChecker{executor: executor}, nil
}

// CheckStatus classifies the repository at repositoryPath. Priority is ERROR, DIRTY, UNPUSHED, CLEAN.
func (checker *StatusChecker) CheckStatus(executionContext context.Context, repositoryPath string) shared.StatusReport {
	porcelainOutput, statusError := checker.runGit(executionContext, repositoryPath, statusArguments())
	if statusError != nil {
		return errorReport(statusError)
	}

	changes, parseError := parsePorcelain(porcelainOutput)
	if parseError != nil {
		return errorReport(parseError)
	}
	if changes.total() > 0 {
		return shared.StatusReport{
			Status: shared.RepositoryStatusDirty,
			Detail: fmt.Sprintf(dirtyDetailTemplateConstant, changes.staged, changes.unstaged, changes.untracked),
		}
	}

	upstreamOutput, upstreamError := checker.runGit(executionContext, repositoryPath, upstreamArguments())
	if upstreamError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(upstreamError, &commandFailure) {
			return shared.StatusReport{Status: shared.RepositoryStatusClean, Detail: noUpstreamDetailConstant}
		}
		return errorReport(upstreamError)
	}
	upstream := strings.TrimSpace(upstreamOutput)

	countOutput, countError := checker.runGit(executionContext, repositoryPath, aheadCountArguments())
	if countError != nil {
		return errorReport(countError)
	}

	aheadCount, conversionError := strconv.Atoi(strings.TrimSpace(countOutput))
	if conversionError != nil || aheadCount < 0 {
		return errorReport(fmt.Errorf(unexpectedCountTemplateConstant, strings.TrimSpace(countOutput)))
	}

	if aheadCount > 0 {
		return shared.StatusReport{
			Status:     shared.RepositoryStatusUnpushed,
			Upstream:   upstream,
			AheadCount: aheadCount,
			Detail:     fmt.Sprintf(unpushedDetailTemplateConstant, aheadCount, upstream),
		}
	}

	return shared.StatusReport{
		Status:   shared.RepositoryStatusClean,
		Upstream: upstream,
		Detail:   fmt.Sprintf(upToDateDetailTemplateConstant, upstream),
	}
}

func (checker *StatusChecker) runGit(executionContext context.Context, repositoryPath string, arguments []string) (string, error) {
	executionResult, executionError := checker.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: repositoryEnvironment(repositoryPath),
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// repositoryEnvironment pins git to the marker inside repositoryPath so a broken
// repository fails instead of resolving to an enclosing one or to an inherited GIT_DIR.
func repositoryEnvironment(repositoryPath string) map[string]string {
	return map[string]string{
		gitOptionalLocksVariableConstant: gitOptionalLocksDisabledConstant,
		gitDirectoryVariableConstant:     filepath.Join(repositoryPath, shared.RepositoryMarkerNameConstant),
		gitWorkTreeVariableConstant:      repositoryPath,
		gitCeilingDirectoriesConstant:    filepath.Dir(repositoryPath),
	}
}

func errorReport(failure error) shared.StatusReport {
	return shared.StatusReport{Status: shared.RepositoryStatusError, Detail: describeFailure(failure)}
}

func describeFailure(failure error) string {
	var commandFailure execshell.CommandFailedError
	if errors.As(failure, &commandFailure) {
		trimmedStandardError := strings.TrimSpace(commandFailure.Result.StandardError)
		if len(trimmedStandardError) > 0 {
			return firstLine(trimmedStandardError)
		}
	}
	return firstLine(failure.Error())
}

func firstLine(text string) string {
	if index := strings.IndexByte(text, '\n'); index >= 0 {
		return strings.TrimSpace(text[:index])
	}
	return text
}

type workingTreeChanges struct {
	staged    int
	unstaged  int
	untracked int
}

func (changes workingTreeChanges) total() int {
	return changes.staged + changes.unstaged + changes.untracked
}

// parsePorcelain counts porcelain v1 entries. A file staged and modified again counts on both sides.
func parsePorcelain(output string) (workingTreeChanges, error) {
	var changes workingTreeChanges
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		if len(line) < porcelainStatusCodeLengthConstant {
			return workingTreeChanges{}, fmt.Errorf(unexpectedPorcelainTemplateConstant, line)
		}

		statusCode := line[:porcelainStatusCodeLengthConstant]
		switch statusCode {
		case porcelainUntrackedMarkerConstant:
			changes.untracked++
			continue
		case porcelainIgnoredMarkerConstant:
			continue
		}

		if statusCode[0] != porcelainUnmodifiedMarkerConstant {
			changes.staged++
		}
		if statusCode[1] != porcelainUnmodifiedMarkerConstant {
			changes.unstaged++
		}
	}
	return changes, nil
}

func statusArguments() []string {
	return []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant}
}

func upstreamArguments() []string {
	return []string{
		gitRevParseSubcommandConstant,
		gitAbbrevRefFlagConstant,
		gitSymbolicFullNameFlagConstant,
		gitUpstreamReferenceConstant,
	}
}

func aheadCountArguments() []string {
	return []string{gitRevListSubcommandConstant, gitCountFlagConstant, gitAheadRangeConstant}
}
