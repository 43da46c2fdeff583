package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// espeakVoices maps exercise languages to espeak-ng voice names
var espeakVoices = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "cmn",
}

// VoiceFor returns the espeak-ng voice for a language name or code,
// defaulting to English
func VoiceFor(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	if v, ok := espeakVoices[l]; ok {
		return v
	}
	for _, v := range espeakVoices {
		if v == l {
			return v
		}
	}
	return "en"
}

// ESpeakProvider implements Provider for a local espeak-ng. It only writes
// WAV files.
type ESpeakProvider struct {
	voice string
	speed int // words per minute
	pitch int // 0 to 99
}

// NewESpeakProvider creates an espeak-ng provider for the given language
func NewESpeakProvider(language string) *ESpeakProvider {
	return &ESpeakProvider{
		voice: VoiceFor(language),
		speed: 140,
		pitch: 50,
	}
}

// SetSpeed updates the speech speed
func (e *ESpeakProvider) SetSpeed(speed int) {
	e.speed = min(max(speed, 80), 450)
}

func (e *ESpeakProvider) args(text, outputFile string) []string {
	return []string{
		"-v", e.voice,
		"-s", strconv.Itoa(e.speed),
		"-p", strconv.Itoa(e.pitch),
		"-w", outputFile,
		text,
	}
}

// GenerateAudio writes a WAV file for text
func (e *ESpeakProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(outputFile)); ext != ".wav" {
		return fmt.Errorf("espeak-ng only writes .wav files, got %q", ext)
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "espeak-ng", e.args(strings.TrimSpace(text), outputFile)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// Name returns the provider name
func (e *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (e *ESpeakProvider) IsAvailable() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}
