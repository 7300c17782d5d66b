// Package scan wires the directory walker, repository status checker, and
// reporter behind the gitscan cobra command.
//
// The CommandBuilder resolves dependencies the same way for production and
// tests: anything left nil on the builder is replaced by the OS-backed default,
// so tests inject fakes only for the parts they exercise.
package scan
