package exercise

import (
	"fmt"
	"strings"
)

// GenerationMode selects how blanks are chosen
type GenerationMode string

const (
	// ModeLocal uses the linguistic pipeline only, no network
	ModeLocal GenerationMode = "local"
	// ModeRemote delegates selection and hints to the text-generation service
	ModeRemote GenerationMode = "remote"
	// ModeHybrid selects locally and asks the service for hints only
	ModeHybrid GenerationMode = "hybrid"
)

// ParseMode accepts a case-insensitive mode name. "ai" and "spacy" are
// accepted as aliases for remote and local.
func ParseMode(s string) (GenerationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "spacy", "nlp":
		return ModeLocal, nil
	case "remote", "ai":
		return ModeRemote, nil
	case "hybrid":
		return ModeHybrid, nil
	}
	return "", fmt.Errorf("unknown generation mode: %q (use local, remote or hybrid)", s)
}

// NeedsRemote reports whether the mode talks to the text-generation service
func (m GenerationMode) NeedsRemote() bool {
	return m == ModeRemote || m == ModeHybrid
}

const (
	MinBlankDensity     = 10
	MaxBlankDensity     = 50
	DefaultBlankDensity = 25
	DefaultMaxBlanks    = 2
)

// Languages lists the supported target languages
var Languages = []string{
	"English", "Spanish", "French", "German", "Italian",
	"Portuguese", "Russian", "Japanese", "Korean", "Chinese",
}

// FocusAreas lists the semantic categories a learner can focus on
var FocusAreas = []string{
	"nouns", "verbs", "adjectives", "adverbs", "prepositions",
	"high-frequency", "low-frequency", "tenses", "modals", "collocations",
}

// ExerciseConfig controls blank selection for one generation request
type ExerciseConfig struct {
	Language   string   `json:"language" yaml:"language"`
	Level      string   `json:"level" yaml:"level"`
	FocusAreas []string `json:"focus_areas" yaml:"focus_areas"`
	// BlankDensity is a percentage of words to blank, 10-50
	BlankDensity int            `json:"blank_density" yaml:"blank_density"`
	Mode         GenerationMode `json:"generation_mode" yaml:"generation_mode"`

	// POSAllowList overrides FocusAreas with explicit UPOS tags (NOUN, VERB, ...)
	POSAllowList []string `json:"pos,omitempty" yaml:"pos,omitempty"`
	// MaxBlanksPerSentence of zero derives the count from BlankDensity
	MaxBlanksPerSentence int  `json:"max_blanks" yaml:"max_blanks"`
	ExcludeStopwords     bool `json:"exclude_stop" yaml:"exclude_stop"`
	HintIncludesLemma    bool `json:"hint_lemma" yaml:"hint_lemma"`
	PreferNamedEntities  bool `json:"prefer_entities" yaml:"prefer_entities"`
}

// DefaultExerciseConfig returns the configuration used when nothing is set
func DefaultExerciseConfig() ExerciseConfig {
	return ExerciseConfig{
		Language:             "English",
		Level:                "B1-B2",
		FocusAreas:           []string{"nouns", "verbs"},
		BlankDensity:         DefaultBlankDensity,
		Mode:                 ModeLocal,
		MaxBlanksPerSentence: DefaultMaxBlanks,
		ExcludeStopwords:     true,
		HintIncludesLemma:    true,
		PreferNamedEntities:  true,
	}
}

// Normalize fills empty fields with defaults and clamps the density
func (c ExerciseConfig) Normalize() ExerciseConfig {
	d := DefaultExerciseConfig()
	if strings.TrimSpace(c.Language) == "" {
		c.Language = d.Language
	}
	if strings.TrimSpace(c.Level) == "" {
		c.Level = d.Level
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	switch {
	case c.BlankDensity == 0:
		c.BlankDensity = DefaultBlankDensity
	case c.BlankDensity < MinBlankDensity:
		c.BlankDensity = MinBlankDensity
	case c.BlankDensity > MaxBlankDensity:
		c.BlankDensity = MaxBlankDensity
	}
	if c.MaxBlanksPerSentence < 0 {
		c.MaxBlanksPerSentence = 0
	}
	if c.POSAllowList != nil {
		tags := make([]string, len(c.POSAllowList))
		for i, p := range c.POSAllowList {
			tags[i] = strings.ToUpper(strings.TrimSpace(p))
		}
		c.POSAllowList = tags
	}
	return c
}

// Validate reports configuration values that cannot be normalized
func (c ExerciseConfig) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	for _, fa := range c.FocusAreas {
		if !containsFold(FocusAreas, fa) {
			return fmt.Errorf("unknown focus area: %q", fa)
		}
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
