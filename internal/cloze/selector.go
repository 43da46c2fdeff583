package cloze

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/nlp"
)

// Candidate is a word position eligible for blanking and the token aligned to it
type Candidate struct {
	WordIndex int
	Token     nlp.Token
}

// Suggestion is a pre-selected word handed to the remote service for hinting
type Suggestion struct {
	Position int    `json:"position"`
	Word     string `json:"word"`
	POS      string `json:"pos"`
	Lemma    string `json:"lemma"`
}

var defaultPOS = map[string]bool{
	nlp.POSNoun:  true,
	nlp.POSPropn: true,
	nlp.POSVerb:  true,
	nlp.POSAdj:   true,
	nlp.POSAdv:   true,
}

var focusPOS = map[string][]string{
	"nouns":        {nlp.POSNoun, nlp.POSPropn},
	"verbs":        {nlp.POSVerb, nlp.POSAux},
	"adjectives":   {nlp.POSAdj},
	"adverbs":      {nlp.POSAdv},
	"prepositions": {nlp.POSAdp},
	"modals":       {nlp.POSAux},
}

// EligiblePOS returns the set of tags a token may carry to become a blank.
// An explicit allow-list wins over focus areas; focus areas without a tag
// mapping fall back to the content-word set.
func EligiblePOS(cfg exercise.ExerciseConfig) map[string]bool {
	if len(cfg.POSAllowList) > 0 {
		set := make(map[string]bool, len(cfg.POSAllowList))
		for _, p := range cfg.POSAllowList {
			set[strings.ToUpper(strings.TrimSpace(p))] = true
		}
		return set
	}

	set := make(map[string]bool)
	for _, fa := range cfg.FocusAreas {
		for _, p := range focusPOS[strings.ToLower(strings.TrimSpace(fa))] {
			set[p] = true
		}
	}
	if len(set) == 0 {
		return defaultPOS
	}
	return set
}

// TargetCount is how many blanks a sentence of wordCount words should get
func TargetCount(cfg exercise.ExerciseConfig, wordCount int) int {
	if cfg.MaxBlanksPerSentence > 0 {
		return cfg.MaxBlanksPerSentence
	}
	density := cfg.BlankDensity
	if density == 0 {
		density = exercise.DefaultBlankDensity
	}
	n := int(math.Round(float64(wordCount) * float64(density) / 100))
	if n < 1 {
		n = 1
	}
	if n > 2 {
		n = 2
	}
	return n
}

// SelectCandidates returns the ranked blank candidates of text, at most
// TargetCount of them
func SelectCandidates(text string, doc *nlp.Document, cfg exercise.ExerciseConfig) []Candidate {
	if doc == nil {
		return nil
	}
	words := exercise.Words(text)
	align := nlp.Align(text, doc)
	eligible := EligiblePOS(cfg)

	collect := func(checkPOS bool) []Candidate {
		var out []Candidate
		for ti, tok := range doc.Tokens {
			wi, ok := align[ti]
			if !ok || !tok.IsAlpha {
				continue
			}
			if cfg.ExcludeStopwords && tok.IsStop {
				continue
			}
			if checkPOS && !eligible[tok.POS] {
				continue
			}
			if exercise.StripPunct(words[wi]) == "" {
				continue
			}
			out = append(out, Candidate{WordIndex: wi, Token: tok})
		}
		return out
	}

	cands := collect(true)
	if len(cands) == 0 {
		cands = collect(false)
	}
	if len(cands) == 0 {
		return nil
	}

	byIndex := make(map[int]Candidate, len(cands))
	for _, c := range cands {
		prev, ok := byIndex[c.WordIndex]
		if !ok || tokenLen(c.Token) > tokenLen(prev.Token) {
			byIndex[c.WordIndex] = c
		}
	}

	ranked := make([]Candidate, 0, len(byIndex))
	for _, c := range byIndex {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if cfg.PreferNamedEntities {
			ea, eb := entityBonus(a.Token), entityBonus(b.Token)
			if ea != eb {
				return ea > eb
			}
		}
		if la, lb := tokenLen(a.Token), tokenLen(b.Token); la != lb {
			return la > lb
		}
		return a.WordIndex < b.WordIndex
	})

	if n := TargetCount(cfg, len(words)); len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SuggestCandidates returns the same selection as SelectCandidates in the
// shape sent to the remote service in hybrid mode
func SuggestCandidates(text string, doc *nlp.Document, cfg exercise.ExerciseConfig) []Suggestion {
	words := exercise.Words(text)
	var out []Suggestion
	for _, c := range SelectCandidates(text, doc, cfg) {
		out = append(out, Suggestion{
			Position: c.WordIndex,
			Word:     exercise.StripPunct(words[c.WordIndex]),
			POS:      c.Token.POS,
			Lemma:    c.Token.Lemma,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func entityBonus(t nlp.Token) int {
	if t.IsEntity || t.POS == nlp.POSPropn {
		return 1
	}
	return 0
}

func tokenLen(t nlp.Token) int {
	return utf8.RuneCountInString(t.Text)
}
