package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Mode", flags.Mode, "local"},
		{"Language", flags.Language, "English"},
		{"Level", flags.Level, "B1-B2"},
		{"Focus", flags.Focus, []string{"nouns", "verbs"}},
		{"Density", flags.Density, 25},
		{"MaxBlanks", flags.MaxBlanks, 2},
		{"APIURL", flags.APIURL, "https://api.openai.com/v1/chat/completions"},
		{"Model", flags.Model, "gpt-3.5-turbo"},
		{"Timeout", flags.Timeout, 30},
		{"Provider", flags.Provider, "openai"},
		{"LogMode", flags.LogMode, "info"},
		{"AudioProvider", flags.AudioProvider, "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Save", flags.Save},
		{"ListModels", flags.ListModels},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"Output", flags.Output},
		{"Video", flags.Video},
		{"BatchFile", flags.BatchFile},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %q, want empty", tt.name, tt.value)
			}
		})
	}
}
