package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitscan/internal/repos/shared"
)

const (
	scanningHeaderTemplateConstant    = "Scanning %s\n"
	sectionHeaderTemplateConstant     = "%s (%d)\n"
	repositoriesSectionTitleConstant  = "GIT REPOSITORIES"
	uninitializedSectionTitleConstant = "UNINITIALIZED DIRECTORIES"
	unreadableSectionTitleConstant    = "UNREADABLE DIRECTORIES"
	statusSeparatorConstant           = " — "
	detailSuffixTemplateConstant      = " (%s)"
	summaryTemplateConstant           = "Summary: %d repositories (%d clean, %d dirty, %d unpushed, %d error), %d uninitialized, %d unreadable\n"
	yamlIndentConstant                = 2
	writeReportErrorTemplateConstant  = "write report: %w"
)

// Reporter renders scan results. It never modifies the results it is given.
type Reporter struct {
	options Options
	palette palette
}

type palette struct {
	clean         *color.Color
	changed       *color.Color
	failure       *color.Color
	uninitialized *color.Color
}

// NewReporter validates options and prepares the icon palette.
func NewReporter(options Options) (*Reporter, error) {
	format, formatError := ParseFormat(string(options.Format))
	if formatError != nil {
		return nil, formatError
	}
	colorMode, colorModeError := ParseColorMode(string(options.ColorMode))
	if colorModeError != nil {
		return nil, colorModeError
	}

	resolvedOptions := options
	resolvedOptions.Format = format
	resolvedOptions.ColorMode = colorMode
	resolvedOptions.Icons = options.Icons.WithDefaults()

	return &Reporter{options: resolvedOptions, palette: newPalette(colorMode)}, nil
}

func newPalette(colorMode ColorMode) palette {
	iconPalette := palette{
		clean:         color.New(color.FgGreen),
		changed:       color.New(color.FgYellow),
		failure:       color.New(color.FgRed, color.Bold),
		uninitialized: color.New(color.FgCyan),
	}
	for _, colorizer := range []*color.Color{iconPalette.clean, iconPalette.changed, iconPalette.failure, iconPalette.uninitialized} {
		switch colorMode {
		case ColorModeAlways:
			colorizer.EnableColor()
		case ColorModeNever:
			colorizer.DisableColor()
		}
	}
	return iconPalette
}

// Render writes the report for results discovered under rootPath.
func (reporter *Reporter) Render(writer io.Writer, rootPath string, results []shared.ScanResult) error {
	if reporter.options.Format == FormatYAML {
		return reporter.renderYAML(writer, rootPath, results)
	}
	return reporter.renderText(writer, rootPath, results)
}

func (reporter *Reporter) renderText(writer io.Writer, rootPath string, results []shared.ScanResult) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(scanningHeaderTemplateConstant, rootPath))

	groups := groupResults(results)
	reporter.writeSection(&builder, repositoriesSectionTitleConstant, groups.repositories)
	reporter.writeSection(&builder, uninitializedSectionTitleConstant, groups.uninitialized)
	reporter.writeSection(&builder, unreadableSectionTitleConstant, groups.unreadable)

	summary := Summarize(results)
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(summaryTemplateConstant,
		summary.Repositories, summary.Clean, summary.Dirty, summary.Unpushed, summary.Errors,
		summary.Uninitialized, summary.Unreadable,
	))

	if _, writeError := io.WriteString(writer, builder.String()); writeError != nil {
		return fmt.Errorf(writeReportErrorTemplateConstant, writeError)
	}
	return nil
}

func (reporter *Reporter) writeSection(builder *strings.Builder, title string, results []shared.ScanResult) {
	if len(results) == 0 {
		return
	}
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(sectionHeaderTemplateConstant, title, len(results)))
	for _, result := range results {
		builder.WriteString(reporter.formatLine(result))
		builder.WriteString("\n")
	}
}

func (reporter *Reporter) formatLine(result shared.ScanResult) string {
	line := reporter.icon(result) + " " + result.RelativePath
	if result.Kind != shared.ResultKindUninitialized {
		line += statusSeparatorConstant + result.Status.Label()
	}
	if reporter.options.Verbose && len(strings.TrimSpace(result.Detail)) > 0 {
		line += fmt.Sprintf(detailSuffixTemplateConstant, result.Detail)
	}
	return line
}

func (reporter *Reporter) icon(result shared.ScanResult) string {
	icons := reporter.options.Icons
	if result.Kind == shared.ResultKindUninitialized {
		return reporter.palette.uninitialized.Sprint(icons.Uninitialized)
	}
	switch result.Status {
	case shared.RepositoryStatusClean:
		return reporter.palette.clean.Sprint(icons.Clean)
	case shared.RepositoryStatusDirty:
		return reporter.palette.changed.Sprint(icons.Dirty)
	case shared.RepositoryStatusUnpushed:
		return reporter.palette.changed.Sprint(icons.Unpushed)
	default:
		return reporter.palette.failure.Sprint(icons.Error)
	}
}

type yamlDocument struct {
	Root          string      `yaml:"root"`
	Repositories  []yamlEntry `yaml:"repositories"`
	Uninitialized []yamlEntry `yaml:"uninitialized"`
	Unreadable    []yamlEntry `yaml:"unreadable"`
	Summary       Summary     `yaml:"summary"`
}

type yamlEntry struct {
	Path       string `yaml:"path"`
	Status     string `yaml:"status,omitempty"`
	Upstream   string `yaml:"upstream,omitempty"`
	AheadCount int    `yaml:"ahead,omitempty"`
	Detail     string `yaml:"detail,omitempty"`
}

func (reporter *Reporter) renderYAML(writer io.Writer, rootPath string, results []shared.ScanResult) error {
	groups := groupResults(results)
	document := yamlDocument{
		Root:          rootPath,
		Repositories:  toYAMLEntries(groups.repositories),
		Uninitialized: toYAMLEntries(groups.uninitialized),
		Unreadable:    toYAMLEntries(groups.unreadable),
		Summary:       Summarize(results),
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return fmt.Errorf(writeReportErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(writeReportErrorTemplateConstant, closeError)
	}
	return nil
}

func toYAMLEntries(results []shared.ScanResult) []yamlEntry {
	entries := make([]yamlEntry, 0, len(results))
	for _, result := range results {
		entry := yamlEntry{
			Path:       result.RelativePath,
			Upstream:   result.Upstream,
			AheadCount: result.AheadCount,
			Detail:     result.Detail,
		}
		if result.Kind != shared.ResultKindUninitialized {
			entry.Status = result.Status.Label()
		}
		entries = append(entries, entry)
	}
	return entries
}
