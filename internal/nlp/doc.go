// Package nlp turns a sentence into a stream of linguistic tokens and
// aligns that stream back to the whitespace-split word positions used by
// exercise records.
//
// English text is tagged with prose, Japanese with kagome. Every other
// language goes through a plain tokenizer that only knows word shapes and
// stopwords. Lemmas come from snowball stems where a stemmer exists.
package nlp
