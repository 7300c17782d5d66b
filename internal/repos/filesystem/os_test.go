package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitscan/internal/repos/filesystem"
)

func TestOSFileSystemReadDirReturnsSortedEntries(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	for _, directoryName := range []string{"zeta", "alpha", "mid"} {
		require.NoError(testInstance, os.Mkdir(filepath.Join(rootDirectory, directoryName), 0o755))
	}

	fileSystem := filesystem.OSFileSystem{}
	entries, readError := fileSystem.ReadDir(rootDirectory)
	require.NoError(testInstance, readError)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	require.Equal(testInstance, []string{"alpha", "mid", "zeta"}, names)
}

func TestOSFileSystemAbsAndStat(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	fileSystem := filesystem.OSFileSystem{}

	absolutePath, absError := fileSystem.Abs(rootDirectory)
	require.NoError(testInstance, absError)
	require.True(testInstance, filepath.IsAbs(absolutePath))

	information, statError := fileSystem.Stat(absolutePath)
	require.NoError(testInstance, statError)
	require.True(testInstance, information.IsDir())

	_, missingError := fileSystem.Stat(filepath.Join(rootDirectory, "missing"))
	require.ErrorIs(testInstance, missingError, os.ErrNotExist)
}
