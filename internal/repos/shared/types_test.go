package shared_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitscan/internal/repos/shared"
)

func TestRepositoryStatusLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status   shared.RepositoryStatus
		expected string
	}{
		{status: shared.RepositoryStatusClean, expected: "CLEAN"},
		{status: shared.RepositoryStatusDirty, expected: "DIRTY"},
		{status: shared.RepositoryStatusUnpushed, expected: "UNPUSHED"},
		{status: shared.RepositoryStatusError, expected: "ERROR"},
		{status: shared.RepositoryStatusNotApplicable, expected: "N/A"},
		{status: shared.RepositoryStatus("unexpected"), expected: "N/A"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(string(testCase.status), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, testCase.status.Label())
		})
	}
}
