// Package reconcile runs a generation request end to end. It dispatches
// each segment to local, remote or hybrid generation, falls back to
// single-sentence requests and then to random blanking when the remote
// service fails, and guarantees that every record leaving it has valid,
// sorted blanks and at least one blank whenever the sentence has a word.
package reconcile
