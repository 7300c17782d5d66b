// Package report renders scan results as a grouped text summary with status
// icons or as a YAML document.
package report
