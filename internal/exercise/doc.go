// Package exercise defines the records shared by every stage of exercise
// generation: timed subtitle segments, the exercise configuration, blank
// records and exercise records. It also owns the word-level text rules
// (splitting, punctuation stripping, difficulty) and the validation gate
// that every generated blank must pass.
package exercise
