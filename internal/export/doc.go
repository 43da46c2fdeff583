// Package export writes generated exercises to disk as JSON, YAML or an
// Anki-importable CSV of cloze notes.
package export
