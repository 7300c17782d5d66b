package discovery

import (
	"io/fs"
	"sort"
	"strings"
)

const extensionSeparatorConstant = "."

var defaultSourceExtensions = []string{
	".py", ".js", ".ts", ".c", ".cpp", ".h", ".hpp", ".java", ".go", ".rs", ".rb",
	".php", ".html", ".css", ".sh", ".bat", ".json", ".xml", ".yml", ".yaml", ".md",
}

// DefaultSourceExtensions returns the extensions recognized when none are configured.
func DefaultSourceExtensions() []string {
	extensions := make([]string, len(defaultSourceExtensions))
	copy(extensions, defaultSourceExtensions)
	return extensions
}

// ExtensionDetector recognizes source files by file name suffix.
type ExtensionDetector struct {
	extensions []string
}

// NewExtensionDetector normalizes the provided extensions to lower case with a leading dot.
// Blank values are ignored; an empty result matches nothing.
func NewExtensionDetector(extensions []string) *ExtensionDetector {
	return &ExtensionDetector{extensions: NormalizeExtensions(extensions)}
}

// Extensions reports the normalized extension set in sorted order.
func (detector *ExtensionDetector) Extensions() []string {
	extensions := make([]string, len(detector.extensions))
	copy(extensions, detector.extensions)
	return extensions
}

// ContainsSourceFiles inspects the immediate entries only. Only regular files match, so callers
// resolve symbolic links before asking.
func (detector *ExtensionDetector) ContainsSourceFiles(entries []fs.DirEntry) bool {
	if len(detector.extensions) == 0 {
		return false
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if detector.matches(entry.Name()) {
			return true
		}
	}
	return false
}

func (detector *ExtensionDetector) matches(fileName string) bool {
	lowerCaseName := strings.ToLower(fileName)
	for _, extension := range detector.extensions {
		if strings.HasSuffix(lowerCaseName, extension) {
			return true
		}
	}
	return false
}

// NormalizeExtensions lower-cases, dot-prefixes, deduplicates, and sorts extensions.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]struct{}, len(extensions))
	normalized := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		trimmed := strings.ToLower(strings.TrimSpace(extension))
		if len(strings.TrimLeft(trimmed, extensionSeparatorConstant)) == 0 {
			continue
		}
		if !strings.HasPrefix(trimmed, extensionSeparatorConstant) {
			trimmed = extensionSeparatorConstant + trimmed
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	sort.Strings(normalized)
	return normalized
}
