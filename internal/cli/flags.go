package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Output     string
	Video      string
	BatchFile  string
	OffsetMs   int64
	From       time.Duration
	To         time.Duration
	Save       bool
	ListModels bool
	LogMode    string

	// Exercise flags
	Mode      string
	Language  string
	Level     string
	Focus     []string
	Density   int
	MaxBlanks int

	// Text-generation service flags
	APIURL   string
	Model    string
	Timeout  int
	Provider string

	// Speech flags
	AudioProvider string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Mode:      "local",
		Language:  "English",
		Level:     "B1-B2",
		Focus:     []string{"nouns", "verbs"},
		Density:   25,
		MaxBlanks: 2,
		APIURL:    "https://api.openai.com/v1/chat/completions",
		Model:     "gpt-3.5-turbo",
		Timeout:   30,
		Provider:  "openai",
		LogMode:   "info",

		AudioProvider: "auto",
	}
}
