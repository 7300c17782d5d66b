// Package gitrepo interrogates git repositories discovered during a scan.
//
// StatusChecker runs git status and upstream comparison queries through a
// shared.GitExecutor and folds the results into a single CLEAN, DIRTY,
// UNPUSHED, or ERROR classification.
package gitrepo
