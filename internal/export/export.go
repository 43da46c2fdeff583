package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// Format is an export file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatAPKG Format = "apkg"
)

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".apkg":
		return FormatAPKG, nil
	}
	return "", fmt.Errorf("unsupported export format %q (use .json, .yaml, .yml, .csv or .apkg)", filepath.Ext(path))
}

// document is the top-level shape of JSON and YAML exports
type document struct {
	Count     int                       `json:"count" yaml:"count"`
	Exercises []exercise.ExerciseRecord `json:"exercises" yaml:"exercises"`
}

// Write exports records to path in the format given by its extension
func Write(path string, records []exercise.ExerciseRecord) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if records == nil {
		records = []exercise.ExerciseRecord{}
	}

	switch format {
	case FormatCSV:
		return writeCSV(path, records)
	case FormatAPKG:
		return writeAPKG(path, records)
	case FormatYAML:
		data, err := yaml.Marshal(document{Count: len(records), Exercises: records})
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return os.WriteFile(path, data, 0644)
	default:
		data, err := json.MarshalIndent(document{Count: len(records), Exercises: records}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return os.WriteFile(path, append(data, '\n'), 0644)
	}
}

// Read loads records previously written by Write
func Read(path string) ([]exercise.ExerciseRecord, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var doc document
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("cannot read %s exports back", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc.Exercises, nil
}

func writeCSV(path string, records []exercise.ExerciseRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"Text", "Answers", "Start", "End", "Subtitle"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, rec := range records {
		answers := make([]string, len(rec.Blanks))
		for i, b := range rec.Blanks {
			answers[i] = b.Answer
		}
		row := []string{
			ClozeText(rec),
			strings.Join(answers, ", "),
			formatTime(rec.StartMs),
			formatTime(rec.EndMs),
			fmt.Sprint(rec.SubtitleIndex),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write exercise: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ClozeText renders a record in Anki cloze syntax, one deletion per blank:
// "The {{c1::cat::3 letters}} sat."
func ClozeText(rec exercise.ExerciseRecord) string {
	words := exercise.Words(rec.OriginalText)
	for i, b := range rec.Blanks {
		if b.Position < 0 || b.Position >= len(words) {
			continue
		}
		w := words[b.Position]
		idx := strings.Index(w, b.Answer)
		if idx < 0 {
			continue
		}
		deletion := fmt.Sprintf("{{c%d::%s", i+1, b.Answer)
		if b.Hint != "" {
			deletion += "::" + strings.ReplaceAll(b.Hint, "}}", "} }")
		}
		deletion += "}}"
		words[b.Position] = w[:idx] + deletion + w[idx+len(b.Answer):]
	}
	return strings.Join(words, " ")
}

func formatTime(ms int64) string {
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
