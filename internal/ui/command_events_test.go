package ui_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitscan/internal/execshell"
	"github.com/temirov/gitscan/internal/ui"
)

const (
	testRepositoryPathConstant         = "/tmp/project"
	testExecutionFailureReasonConstant = "signal: killed"
	testStandardErrorMessageConstant   = "fatal: no upstream configured for branch 'main'"
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	statusCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}, WorkingDirectory: testRepositoryPathConstant},
	}
	upstreamCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"}, WorkingDirectory: testRepositoryPathConstant},
	}
	countCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"rev-list", "--count", "@{u}..HEAD"}, WorkingDirectory: testRepositoryPathConstant},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "status_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(statusCommand)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Reviewing working tree status in /tmp/project",
		},
		{
			name: "count_completed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(countCommand, execshell.ExecutionResult{StandardOutput: "2\n"})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "/tmp/project has 2 commit(s) not pushed to upstream",
		},
		{
			name: "upstream_missing",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(upstreamCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "No upstream branch configured in /tmp/project (exit code 128: " + testStandardErrorMessageConstant + ")",
		},
		{
			name: "execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(statusCommand, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "Unable to review working tree status in /tmp/project: " + testExecutionFailureReasonConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			core, observedLogs := observer.New(zapcore.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(core))

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerToleratesNil(testInstance *testing.T) {
	var eventLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
	})
	require.NotPanics(testInstance, func() {
		ui.NewConsoleCommandEventLogger(nil).CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
	})
}
