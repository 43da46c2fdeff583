// Package cloze chooses which words of a sentence to blank using the
// linguistic tokens from package nlp, and builds blank records with
// part-of-speech, lemma and first-letter hints. Everything here is
// deterministic and runs without a network.
package cloze
