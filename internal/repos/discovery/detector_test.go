package discovery_test

import (
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitscan/internal/repos/discovery"
)

const detectorFixtureDirectoryConstant = "fixture"

func readFixtureEntries(testInstance *testing.T, fileNames []string, directoryNames []string) []fs.DirEntry {
	testInstance.Helper()
	fileSystem := fstest.MapFS{detectorFixtureDirectoryConstant: &fstest.MapFile{Mode: fs.ModeDir | 0o755}}
	for _, fileName := range fileNames {
		fileSystem[detectorFixtureDirectoryConstant+"/"+fileName] = &fstest.MapFile{Data: []byte("content")}
	}
	for _, directoryName := range directoryNames {
		fileSystem[detectorFixtureDirectoryConstant+"/"+directoryName] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
	}
	entries, readError := fs.ReadDir(fileSystem, detectorFixtureDirectoryConstant)
	require.NoError(testInstance, readError)
	return entries
}

func TestExtensionDetectorContainsSourceFiles(testInstance *testing.T) {
	testCases := []struct {
		name           string
		extensions     []string
		fileNames      []string
		directoryNames []string
		expected       bool
	}{
		{name: "python_file", extensions: discovery.DefaultSourceExtensions(), fileNames: []string{"main.py"}, expected: true},
		{name: "no_files", extensions: discovery.DefaultSourceExtensions(), expected: false},
		{name: "unrecognized_files", extensions: discovery.DefaultSourceExtensions(), fileNames: []string{"photo.png", "notes.txt"}, expected: false},
		{name: "upper_case_file_name", extensions: []string{".go"}, fileNames: []string{"MAIN.GO"}, expected: true},
		{name: "extension_without_dot", extensions: []string{"RS"}, fileNames: []string{"lib.rs"}, expected: true},
		{name: "directory_named_like_source", extensions: []string{".go"}, directoryNames: []string{"pkg.go"}, expected: false},
		{name: "empty_extension_set", extensions: nil, fileNames: []string{"main.py"}, expected: false},
		{name: "suffix_must_match_end", extensions: []string{".js"}, fileNames: []string{"app.json"}, expected: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			entries := readFixtureEntries(testInstance, testCase.fileNames, testCase.directoryNames)
			detector := discovery.NewExtensionDetector(testCase.extensions)
			require.Equal(testInstance, testCase.expected, detector.ContainsSourceFiles(entries))
		})
	}
}

func TestNormalizeExtensions(testInstance *testing.T) {
	normalized := discovery.NormalizeExtensions([]string{"go", " .PY ", ".go", "", ".", "Md"})
	require.Equal(testInstance, []string{".go", ".md", ".py"}, normalized)
}

func TestDefaultSourceExtensionsReturnsCopy(testInstance *testing.T) {
	extensions := discovery.DefaultSourceExtensions()
	require.Len(testInstance, extensions, 21)
	extensions[0] = ".mutated"
	require.NotContains(testInstance, discovery.DefaultSourceExtensions(), ".mutated")
}

func TestExtensionDetectorIgnoresUnresolvedSymbolicLinks(testInstance *testing.T) {
	fileSystem := fstest.MapFS{
		detectorFixtureDirectoryConstant:                &fstest.MapFile{Mode: fs.ModeDir | 0o755},
		detectorFixtureDirectoryConstant + "/vendor.js": &fstest.MapFile{Data: []byte("../vendor"), Mode: fs.ModeSymlink | 0o777},
	}
	entries, readError := fs.ReadDir(fileSystem, detectorFixtureDirectoryConstant)
	require.NoError(testInstance, readError)

	detector := discovery.NewExtensionDetector([]string{".js"})
	require.False(testInstance, detector.ContainsSourceFiles(entries))
}

func TestExtensionDetectorExtensionsReturnsNormalizedCopy(testInstance *testing.T) {
	detector := discovery.NewExtensionDetector([]string{"GO", ".py", "go"})
	extensions := detector.Extensions()
	require.Equal(testInstance, []string{".go", ".py"}, extensions)

	extensions[0] = ".mutated"
	require.Equal(testInstance, []string{".go", ".py"}, detector.Extensions())
}
