// Package cli defines the listenfill command line: flags, their binding
// to configuration keys, and helpers that turn the merged configuration
// into the values the rest of the program works with.
package cli
