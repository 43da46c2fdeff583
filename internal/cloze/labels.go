package cloze

import "codeberg.org/snonux/listenfill/internal/nlp"

var posLabels = map[string]string{
	nlp.POSNoun:  "noun",
	nlp.POSPropn: "proper noun",
	nlp.POSVerb:  "verb",
	nlp.POSAux:   "auxiliary verb",
	nlp.POSAdj:   "adjective",
	nlp.POSAdv:   "adverb",
	nlp.POSAdp:   "preposition",
	nlp.POSDet:   "determiner",
	nlp.POSPron:  "pronoun",
	nlp.POSCconj: "conjunction",
	nlp.POSSconj: "subordinating conjunction",
	nlp.POSNum:   "numeral",
	nlp.POSPart:  "particle",
	nlp.POSIntj:  "interjection",
	nlp.POSSym:   "symbol",
}

// POSLabel returns a readable name for a universal tag
func POSLabel(pos string) string {
	if l, ok := posLabels[pos]; ok {
		return l
	}
	return "word"
}
