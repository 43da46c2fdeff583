package remote

import (
	"encoding/json"
	"testing"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "valid compact json unchanged",
			in:   `{"blanks":[{"position":1,"word":"cat"}]}`,
			want: `{"blanks":[{"position":1,"word":"cat"}]}`,
		},
		{
			name: "broken string value",
			in:   "{\"word\": \"wo\nrd\"}",
			want: `{"word": "word"}`,
		},
		{
			name: "code fence",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bom",
			in:   "\ufeff{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "trailing commas",
			in:   `{"a": [1, 2,], "b": 3,,}`,
			want: `{"a": [1, 2], "b": 3}`,
		},
		{
			name: "commas inside strings kept",
			in:   `{"hint": "rhymes with: cat, hat, }", "alts": ["a, ]", "b"]}`,
			want: `{"hint": "rhymes with: cat, hat, }", "alts": ["a, ]", "b"]}`,
		},
		{
			name: "trailing comma after string with comma",
			in:   `{"hint": "cat, hat",}`,
			want: `{"hint": "cat, hat"}`,
		},
		{
			name: "control characters",
			in:   "{\"a\": \"x\x01y\"}",
			want: `{"a": "xy"}`,
		},
		{
			name: "line break after quote",
			in:   "{\"a\": \"b\"\n}",
			want: `{"a": "b"}`,
		},
		{
			name: "truncated batch keeps complete records",
			in:   `{"exercises": [{"sentence_index": 1, "blanks": []}, {"sentence_index": 2, "blan`,
			want: `{"exercises": [{"sentence_index": 1, "blanks": []}]}`,
		},
		{
			name: "trailing prose after object",
			in:   `{"a": [1]} hope this helps`,
			want: `{"a": [1]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairJSON(tt.in); got != tt.want {
				t.Errorf("RepairJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairJSONBrokenWordParses(t *testing.T) {
	var v struct {
		Word string `json:"word"`
	}
	if err := json.Unmarshal([]byte(RepairJSON("{\"word\": \"wo\nrd\"}")), &v); err != nil {
		t.Fatalf("repaired JSON does not parse: %v", err)
	}
	if v.Word != "word" {
		t.Errorf("word = %q, want %q", v.Word, "word")
	}
}

func TestRepairJSONIdempotent(t *testing.T) {
	inputs := []string{
		`{"blanks":[{"position":1,"word":"cat"}]}`,
		"{\n  \"exercises\": [\"\n    {\n      \"sentence_index\": 1,\"\n      \"blanks\": []\n    }\n  ]\n}",
		"```json\n{\"blanks\": [{\"position\": 0, \"word\": \"Hel\nlo\",},]}\n```",
		`{"a": [1, 2,,], "b": {"c": [`,
		"{\"a\": \"x\x01\ny\"}",
		`no json here at all`,
		`{"a": "quote \" inside", "b": [1,]`,
		`{"hint": "rhymes with: cat, hat, }",}`,
	}

	for _, in := range inputs {
		once := RepairJSON(in)
		twice := RepairJSON(once)
		if once != twice {
			t.Errorf("RepairJSON not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestRepairJSONPrettyValidStillParses(t *testing.T) {
	in := "{\n  \"blanks\": [\n    {\n      \"position\": 2,\n      \"word\": \"sat\"\n    }\n  ]\n}"
	var v map[string]any
	if err := json.Unmarshal([]byte(RepairJSON(in)), &v); err != nil {
		t.Errorf("pretty valid JSON no longer parses: %v", err)
	}
}
