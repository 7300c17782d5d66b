package scan

import (
	"strings"
	"time"

	"github.com/temirov/gitscan/internal/report"
	"github.com/temirov/gitscan/internal/repos/discovery"
)

const (
	defaultRootPathConstant                   = "."
	defaultGitTimeoutConstant                 = 30 * time.Second
	configurationKeySeparatorConstant         = "."
	rootConfigurationKeyConstant              = "root"
	extensionsConfigurationKeyConstant        = "extensions"
	excludeConfigurationKeyConstant           = "exclude"
	collapseConfigurationKeyConstant          = "collapse_nested"
	gitTimeoutConfigurationKeyConstant        = "git_timeout"
	formatConfigurationKeyConstant            = "format"
	colorConfigurationKeyConstant             = "color"
	iconsConfigurationKeyConstant             = "icons"
	cleanIconConfigurationKeyConstant         = "clean"
	dirtyIconConfigurationKeyConstant         = "dirty"
	unpushedIconConfigurationKeyConstant      = "unpushed"
	errorIconConfigurationKeyConstant         = "error"
	uninitializedIconConfigurationKeyConstant = "uninitialized"
)

// CommandConfiguration captures configuration values for the scan command.
type CommandConfiguration struct {
	Root           string        `mapstructure:"root"`
	Extensions     []string      `mapstructure:"extensions"`
	Exclude        []string      `mapstructure:"exclude"`
	CollapseNested bool          `mapstructure:"collapse_nested"`
	GitTimeout     time.Duration `mapstructure:"git_timeout"`
	Format         string        `mapstructure:"format"`
	Color          string        `mapstructure:"color"`
	Icons          report.Icons  `mapstructure:"icons"`
}

// DefaultCommandConfiguration provides baseline configuration values for the scan.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:           defaultRootPathConstant,
		Extensions:     discovery.DefaultSourceExtensions(),
		Exclude:        nil,
		CollapseNested: true,
		GitTimeout:     defaultGitTimeoutConstant,
		Format:         string(report.FormatText),
		Color:          string(report.ColorModeAuto),
		Icons:          report.DefaultIcons(),
	}
}

// DefaultConfigurationValues flattens the default configuration under keyPrefix for the configuration loader.
func DefaultConfigurationValues(keyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	qualify := func(segments ...string) string {
		if len(strings.TrimSpace(keyPrefix)) > 0 {
			segments = append([]string{keyPrefix}, segments...)
		}
		return strings.Join(segments, configurationKeySeparatorConstant)
	}

	return map[string]any{
		qualify(rootConfigurationKeyConstant):                                             defaults.Root,
		qualify(extensionsConfigurationKeyConstant):                                       defaults.Extensions,
		qualify(excludeConfigurationKeyConstant):                                          []string{},
		qualify(collapseConfigurationKeyConstant):                                         defaults.CollapseNested,
		qualify(gitTimeoutConfigurationKeyConstant):                                       defaults.GitTimeout.String(),
		qualify(formatConfigurationKeyConstant):                                           defaults.Format,
		qualify(colorConfigurationKeyConstant):                                            defaults.Color,
		qualify(iconsConfigurationKeyConstant, cleanIconConfigurationKeyConstant):         defaults.Icons.Clean,
		qualify(iconsConfigurationKeyConstant, dirtyIconConfigurationKeyConstant):         defaults.Icons.Dirty,
		qualify(iconsConfigurationKeyConstant, unpushedIconConfigurationKeyConstant):      defaults.Icons.Unpushed,
		qualify(iconsConfigurationKeyConstant, errorIconConfigurationKeyConstant):         defaults.Icons.Error,
		qualify(iconsConfigurationKeyConstant, uninitializedIconConfigurationKeyConstant): defaults.Icons.Uninitialized,
	}
}

// sanitize trims values and fills the ones that cannot be blank. An explicitly empty extension list stays empty.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultRootPathConstant
	}
	if configuration.Extensions == nil {
		sanitized.Extensions = discovery.DefaultSourceExtensions()
	} else {
		sanitized.Extensions = discovery.NormalizeExtensions(configuration.Extensions)
	}
	sanitized.Exclude = sanitizeNames(configuration.Exclude)
	if sanitized.GitTimeout < 0 {
		sanitized.GitTimeout = 0
	}
	sanitized.Format = strings.TrimSpace(configuration.Format)
	sanitized.Color = strings.TrimSpace(configuration.Color)
	sanitized.Icons = configuration.Icons.WithDefaults()

	return sanitized
}

func sanitizeNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
