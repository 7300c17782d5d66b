// Package ui narrates git activity for people watching a scan run with --verbose.
//
// Structured telemetry keeps flowing through the regular logger; the messages
// here describe each query in plain words.
package ui
