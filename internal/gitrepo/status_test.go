package gitrepo_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitscan/internal/execshell"
	"github.com/temirov/gitscan/internal/gitrepo"
	"github.com/temirov/gitscan/internal/repos/shared"
)

const (
	testRepositoryPathConstant = "/tmp/example"
	statusCommandKeyConstant   = "status --porcelain"
	upstreamCommandKeyConstant = "rev-parse --abbrev-ref --symbolic-full-name @{u}"
	countCommandKeyConstant    = "rev-list --count @{u}..HEAD"
)

type stubOutcome struct {
	result execshell.ExecutionResult
	err    error
}

type stubGitExecutor struct {
	outcomes        map[string]stubOutcome
	invokedCommands []string
	environments    []map[string]string
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	key := strings.Join(details.Arguments, " ")
	executor.invokedCommands = append(executor.invokedCommands, key)
	executor.environments = append(executor.environments, details.EnvironmentVariables)
	if details.WorkingDirectory != testRepositoryPathConstant {
		return execshell.ExecutionResult{}, fmt.Errorf("unexpected working directory: %s", details.WorkingDirectory)
	}
	if outcome, found := executor.outcomes[key]; found {
		return outcome.result, outcome.err
	}
	return execshell.ExecutionResult{}, fmt.Errorf("unexpected git command: %s", key)
}

func commandFailure(arguments string, exitCode int, standardError string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: strings.Fields(arguments)}},
		Result:  execshell.ExecutionResult{ExitCode: exitCode, StandardError: standardError},
	}
}

func TestNewStatusCheckerRequiresExecutor(testInstance *testing.T) {
	checker, creationError := gitrepo.NewStatusChecker(nil)
	require.Nil(testInstance, checker)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
}

func TestStatusCheckerClassification(testInstance *testing.T) {
	testCases := []struct {
		name             string
		outcomes         map[string]stubOutcome
		expectedReport   shared.StatusReport
		expectedCommands []string
	}{
		{
			name: "clean_without_upstream",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant:   {},
				upstreamCommandKeyConstant: {err: commandFailure(upstreamCommandKeyConstant, 128, "fatal: no upstream configured for branch 'main'\n")},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusClean, Detail: "no upstream configured"},
			expectedCommands: []string{statusCommandKeyConstant, upstreamCommandKeyConstant},
		},
		{
			name: "clean_with_upstream",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant:   {},
				upstreamCommandKeyConstant: {result: execshell.ExecutionResult{StandardOutput: "origin/main\n"}},
				countCommandKeyConstant:    {result: execshell.ExecutionResult{StandardOutput: "0\n"}},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusClean, Upstream: "origin/main", Detail: "up to date with origin/main"},
			expectedCommands: []string{statusCommandKeyConstant, upstreamCommandKeyConstant, countCommandKeyConstant},
		},
		{
			name: "dirty_with_unstaged_change",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant: {result: execshell.ExecutionResult{StandardOutput: " M main.py\n"}},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusDirty, Detail: "0 staged, 1 unstaged, 0 untracked"},
			expectedCommands: []string{statusCommandKeyConstant},
		},
		{
			name: "dirty_takes_precedence_over_unpushed",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant:   {result: execshell.ExecutionResult{StandardOutput: "M  staged.go\nMM both.go\n?? new.txt\n"}},
				upstreamCommandKeyConstant: {result: execshell.ExecutionResult{StandardOutput: "origin/main\n"}},
				countCommandKeyConstant:    {result: execshell.ExecutionResult{StandardOutput: "4\n"}},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusDirty, Detail: "2 staged, 1 unstaged, 1 untracked"},
			expectedCommands: []string{statusCommandKeyConstant},
		},
		{
			name: "unpushed_commits",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant:   {},
				upstreamCommandKeyConstant: {result: execshell.ExecutionResult{StandardOutput: "origin/feature\n"}},
				countCommandKeyConstant:    {result: execshell.ExecutionResult{StandardOutput: "2\n"}},
			},
			expectedReport: shared.StatusReport{
				Status:     shared.RepositoryStatusUnpushed,
				Upstream:   "origin/feature",
				AheadCount: 2,
				Detail:     "2 commit(s) ahead of origin/feature",
			},
			expectedCommands: []string{statusCommandKeyConstant, upstreamCommandKeyConstant, countCommandKeyConstant},
		},
		{
			name: "status_query_failure",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant: {err: commandFailure(statusCommandKeyConstant, 128, "fatal: bad object HEAD\nmore context\n")},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusError, Detail: "fatal: bad object HEAD"},
			expectedCommands: []string{statusCommandKeyConstant},
		},
		{
			name: "upstream_execution_failure",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant: {},
				upstreamCommandKeyConstant: {err: execshell.CommandExecutionError{
					Command: execshell.ShellCommand{Name: execshell.CommandGit},
					Cause:   errors.New("signal: killed"),
				}},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusError, Detail: "git could not be executed: signal: killed"},
			expectedCommands: []string{statusCommandKeyConstant, upstreamCommandKeyConstant},
		},
		{
			name: "unparseable_ahead_count",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant:   {},
				upstreamCommandKeyConstant: {result: execshell.ExecutionResult{StandardOutput: "origin/main\n"}},
				countCommandKeyConstant:    {result: execshell.ExecutionResult{StandardOutput: "many\n"}},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusError, Detail: `unexpected rev-list output "many"`},
			expectedCommands: []string{statusCommandKeyConstant, upstreamCommandKeyConstant, countCommandKeyConstant},
		},
		{
			name: "unparseable_porcelain",
			outcomes: map[string]stubOutcome{
				statusCommandKeyConstant: {result: execshell.ExecutionResult{StandardOutput: "M\n"}},
			},
			expectedReport:   shared.StatusReport{Status: shared.RepositoryStatusError, Detail: `unexpected status output "M"`},
			expectedCommands: []string{statusCommandKeyConstant},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			executor := &stubGitExecutor{outcomes: testCase.outcomes}
			checker, creationError := gitrepo.NewStatusChecker(executor)
			require.NoError(testInstance, creationError)

			report := checker.CheckStatus(context.Background(), testRepositoryPathConstant)

			require.Equal(testInstance, testCase.expectedReport, report)
			require.Equal(testInstance, testCase.expectedCommands, executor.invokedCommands)
		})
	}
}

func TestStatusCheckerPinsRepositoryEnvironment(testInstance *testing.T) {
	executor := &stubGitExecutor{outcomes: map[string]stubOutcome{
		statusCommandKeyConstant:   {},
		upstreamCommandKeyConstant: {err: commandFailure(upstreamCommandKeyConstant, 128, "fatal: no upstream\n")},
	}}
	checker, creationError := gitrepo.NewStatusChecker(executor)
	require.NoError(testInstance, creationError)

	checker.CheckStatus(context.Background(), testRepositoryPathConstant)

	require.Len(testInstance, executor.environments, 2)
	for environmentIndex, environment := range executor.environments {
		testInstance.Run(fmt.Sprintf("%d_%s", environmentIndex, executor.invokedCommands[environmentIndex]), func(testInstance *testing.T) {
			require.Equal(testInstance, "/tmp/example/.git", environment["GIT_DIR"])
			require.Equal(testInstance, testRepositoryPathConstant, environment["GIT_WORK_TREE"])
			require.Equal(testInstance, "/tmp", environment["GIT_CEILING_DIRECTORIES"])
			require.Equal(testInstance, "0", environment["GIT_OPTIONAL_LOCKS"])
		})
	}
}
