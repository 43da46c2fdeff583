package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/snonux/listenfill/internal/cloze"
	"codeberg.org/snonux/listenfill/internal/exercise"
)

// SystemPrompt is sent with every request
const SystemPrompt = "You are a professional multilingual learning assistant. " +
	"You create listening fill-in-the-blank exercises and always return complete and valid JSON."

// LanguageInfo describes what the prompt tells the model about a language
type LanguageInfo struct {
	Name          string
	LevelStandard string
	FunctionWords string
	GrammarFocus  string
}

var languageInfo = map[string]LanguageInfo{
	"english":    {"English", "CEFR standard", "function words (such as the, a, is, and, etc.)", "verb tenses, preposition collocations, article usage"},
	"spanish":    {"Spanish", "CEFR standard", "function words (such as el, la, es, y, etc.)", "verb conjugation, gender agreement, word order rules"},
	"french":     {"French", "CEFR standard", "function words (such as le, la, est, et, etc.)", "verb conjugation, gender agreement, liaison"},
	"german":     {"German", "CEFR standard", "function words (such as der, die, ist, und, etc.)", "case declension, verb position, compound word formation"},
	"italian":    {"Italian", "CEFR standard", "function words (such as il, la, è, e, etc.)", "verb conjugation, gender agreement, intonation changes"},
	"portuguese": {"Portuguese", "CEFR standard", "function words (such as o, a, é, e, etc.)", "verb conjugation, nasalization, word order rules"},
	"russian":    {"Russian", "CEFR standard", "function words (such as и, в, на, с, etc.)", "case system, verb aspect, hard and soft consonants"},
	"japanese":   {"Japanese", "JLPT standard", "particles (such as は, が, を, に, etc.)", "particle usage, honorific system, verb conjugation"},
	"korean":     {"Korean", "TOPIK standard", "particles (such as 은/는, 이/가, 을/를, etc.)", "particle usage, honorific system, verb conjugation"},
	"chinese":    {"Chinese", "HSK standard", "function words (such as 的, 了, 在, 和, etc.)", "word order rules, classifier usage, modal particles"},
}

// InfoFor returns the prompt details for lang; unknown languages get English
func InfoFor(lang string) LanguageInfo {
	if info, ok := languageInfo[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return info
	}
	return languageInfo["english"]
}

func focusList(cfg exercise.ExerciseConfig) string {
	if len(cfg.FocusAreas) == 0 {
		return "nouns, verbs"
	}
	return strings.Join(cfg.FocusAreas, ", ")
}

// BuildPrompt asks for blanks in a single sentence
func BuildPrompt(text string, cfg exercise.ExerciseConfig) string {
	info := InfoFor(cfg.Language)
	focus := focusList(cfg)
	density := cfg.BlankDensity
	if density == 0 {
		density = exercise.DefaultBlankDensity
	}
	suggested := len(exercise.Words(text)) * density / 100
	if suggested < 1 {
		suggested = 1
	}

	return fmt.Sprintf(`Create listening fill-in-the-blank exercises for the following %[1]s sentence.

Sentence: "%[2]s"

Requirements:
1. Target language: %[1]s
2. Learner level: %[3]s (%[4]s)
3. Focus blank types: %[5]s
4. Blank density: approximately %[6]d%% (suggested %[7]d blanks)

Blank principles:
- Choose vocabulary that is challenging but not too difficult for %[1]s learners at this level
- Prioritize %[5]s
- Avoid blanking %[8]s
- Consider %[9]s
- The sentence must stay meaningful after blanking

Hints:
- Write hints in English
- Include the part of speech and the first letter
- For complex vocabulary, add a short meaning hint

Return JSON only, in this format:
{"blanks": [{"position": 0, "word": "original word", "hint": "noun, first letter w", "difficulty": "easy|medium|hard"}]}
"position" is the index of the word in the sentence split on spaces, starting at 0.`,
		info.Name, text, cfg.Level, info.LevelStandard, focus, density, suggested, info.FunctionWords, info.GrammarFocus)
}

// BuildBatchPrompt asks for blanks in up to BatchSize sentences, numbered from 1
func BuildBatchPrompt(segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig) string {
	info := InfoFor(cfg.Language)

	var list strings.Builder
	for i, s := range segs {
		fmt.Fprintf(&list, "%d. %q\n", i+1, s.Text)
	}

	return fmt.Sprintf(`Create listening fill-in-the-blank exercises for the following %[1]d %[2]s sentences.

Sentence list:
%[3]s
Requirements:
- Target language: %[2]s
- Learner level: %[4]s (%[5]s)
- Focus blanks: %[6]s
- Avoid blanking %[7]s
- 1-2 blanks per sentence
- Hints in English, include the part of speech and the first letter
- "position" is the index of the word in the sentence split on spaces, starting at 0

Important: return compact JSON and never put line breaks or special characters inside JSON strings.

Return format example:
{"exercises": [{"sentence_index": 1, "blanks": [{"position": 0, "word": "example", "hint": "noun, first letter e", "difficulty": "medium"}]}]}`,
		len(segs), info.Name, list.String(), cfg.Level, info.LevelStandard, focusList(cfg), info.FunctionWords)
}

// BuildHintPrompt asks only for hints for words that were already chosen
func BuildHintPrompt(text string, picks []cloze.Suggestion, cfg exercise.ExerciseConfig) string {
	info := InfoFor(cfg.Language)
	data, _ := json.Marshal(picks)

	return fmt.Sprintf(`The following words were removed from a %[1]s sentence for a listening exercise (learner level %[2]s, %[3]s).

Sentence: "%[4]s"

Removed words (position is the index of the word in the sentence split on spaces, starting at 0):
%[5]s

Write one short hint in English for each removed word. Include the part of speech and the first letter, and add a brief meaning hint for difficult words. Never reveal the whole word.

Return JSON only, in this format:
{"hints": [{"position": 0, "hint": "noun, first letter w"}]}`,
		info.Name, cfg.Level, info.LevelStandard, text, string(data))
}
