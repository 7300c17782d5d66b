package report

import (
	"errors"
	"fmt"
	"strings"
)

const (
	unsupportedFormatTemplateConstant    = "unsupported report format %q (expected text or yaml)"
	unsupportedColorModeTemplateConstant = "unsupported color mode %q (expected auto, always, or never)"
	defaultCleanIconConstant             = "[OK]"
	defaultChangedIconConstant           = "[*]"
	defaultErrorIconConstant             = "[!]"
	defaultUninitializedIconConstant     = "[?]"
)

// Format selects the report renderer.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ColorMode controls icon colorization in text reports.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

// ErrUnsupportedOption marks report options that cannot be honored.
var ErrUnsupportedOption = errors.New("unsupported report option")

// Icons maps statuses to the markers printed before each entry.
type Icons struct {
	Clean         string `mapstructure:"clean" yaml:"clean"`
	Dirty         string `mapstructure:"dirty" yaml:"dirty"`
	Unpushed      string `mapstructure:"unpushed" yaml:"unpushed"`
	Error         string `mapstructure:"error" yaml:"error"`
	Uninitialized string `mapstructure:"uninitialized" yaml:"uninitialized"`
}

// DefaultIcons returns the stock icon mapping.
func DefaultIcons() Icons {
	return Icons{
		Clean:         defaultCleanIconConstant,
		Dirty:         defaultChangedIconConstant,
		Unpushed:      defaultChangedIconConstant,
		Error:         defaultErrorIconConstant,
		Uninitialized: defaultUninitializedIconConstant,
	}
}

// WithDefaults fills blank icons from the stock mapping.
func (icons Icons) WithDefaults() Icons {
	defaults := DefaultIcons()
	resolved := icons
	if len(strings.TrimSpace(resolved.Clean)) == 0 {
		resolved.Clean = defaults.Clean
	}
	if len(strings.TrimSpace(resolved.Dirty)) == 0 {
		resolved.Dirty = defaults.Dirty
	}
	if len(strings.TrimSpace(resolved.Unpushed)) == 0 {
		resolved.Unpushed = defaults.Unpushed
	}
	if len(strings.TrimSpace(resolved.Error)) == 0 {
		resolved.Error = defaults.Error
	}
	if len(strings.TrimSpace(resolved.Uninitialized)) == 0 {
		resolved.Uninitialized = defaults.Uninitialized
	}
	return resolved
}

// Options configures a Reporter.
type Options struct {
	Format    Format
	ColorMode ColorMode
	Icons     Icons
	Verbose   bool
}

// ParseFormat normalizes a user supplied format. Blank input selects text.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: "+unsupportedFormatTemplateConstant, ErrUnsupportedOption, value)
	}
}

// ParseColorMode normalizes a user supplied color mode. Blank input selects auto.
func ParseColorMode(value string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ColorModeAuto:
		return ColorModeAuto, nil
	case ColorModeAlways:
		return ColorModeAlways, nil
	case ColorModeNever:
		return ColorModeNever, nil
	default:
		return "", fmt.Errorf("%w: "+unsupportedColorModeTemplateConstant, ErrUnsupportedOption, value)
	}
}
