// Package utils holds the configuration loader and logger factory shared by the
// CLI entrypoint and the scan command.
package utils
