package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one subtitle file to process, with the video it belongs to
type Entry struct {
	Subtitle string
	Video    string
}

// ReadBatchFile reads subtitle entries from a file, one per line.
// Supported formats:
//   - Subtitle only: "movie.srt"
//   - With video: "movie.srt = movie.mp4"
//
// Blank lines and lines starting with '#' are ignored. Relative paths are
// resolved against the directory of the batch file.
func ReadBatchFile(filename string) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer file.Close()

	base := filepath.Dir(filename)
	var entries []Entry

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		subtitle, video, _ := strings.Cut(line, "=")
		subtitle = strings.TrimSpace(subtitle)
		video = strings.TrimSpace(video)
		if subtitle == "" {
			return nil, fmt.Errorf("%s:%d: missing subtitle path", filename, lineNo)
		}

		entries = append(entries, Entry{
			Subtitle: resolve(base, subtitle),
			Video:    resolve(base, video),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
