package report_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitscan/internal/report"
)

func TestParseFormat(testInstance *testing.T) {
	testCases := []struct {
		input          string
		expectedFormat report.Format
		expectError    bool
	}{
		{input: "", expectedFormat: report.FormatText},
		{input: " TEXT ", expectedFormat: report.FormatText},
		{input: "yaml", expectedFormat: report.FormatYAML},
		{input: "xml", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%q", testCaseIndex, testCase.input), func(testInstance *testing.T) {
			format, parseError := report.ParseFormat(testCase.input)
			if testCase.expectError {
				require.ErrorIs(testInstance, parseError, report.ErrUnsupportedOption)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedFormat, format)
		})
	}
}

func TestParseColorMode(testInstance *testing.T) {
	testCases := []struct {
		input        string
		expectedMode report.ColorMode
		expectError  bool
	}{
		{input: "", expectedMode: report.ColorModeAuto},
		{input: "Always", expectedMode: report.ColorModeAlways},
		{input: " never ", expectedMode: report.ColorModeNever},
		{input: "sometimes", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%q", testCaseIndex, testCase.input), func(testInstance *testing.T) {
			mode, parseError := report.ParseColorMode(testCase.input)
			if testCase.expectError {
				require.ErrorIs(testInstance, parseError, report.ErrUnsupportedOption)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedMode, mode)
		})
	}
}

func TestIconsWithDefaults(testInstance *testing.T) {
	icons := report.Icons{Unpushed: "↑", Error: "  "}.WithDefaults()
	require.Equal(testInstance, report.Icons{Clean: "[OK]", Dirty: "[*]", Unpushed: "↑", Error: "[!]", Uninitialized: "[?]"}, icons)
}
