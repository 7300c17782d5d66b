// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and publishes command lifecycle events so git
// status queries stay observable and can be replaced by fakes in tests.
package execshell
