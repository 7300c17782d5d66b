// Package cli builds the gitscan command-line application: the scan command
// as the root, the configuration loader with its embedded defaults, and the
// structured logger selected by configuration.
package cli
