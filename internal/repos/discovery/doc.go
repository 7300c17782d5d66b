// Package discovery walks directory trees, stopping at repository roots and
// flagging directories that hold source files but no repository.
package discovery
