package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// ErrNoSegments is returned when a file holds no usable subtitle entries
var ErrNoSegments = errors.New("no subtitle entries found")

var (
	timingRe      = regexp.MustCompile(`(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})\s*-->\s*(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	assOverrideRe = regexp.MustCompile(`\{\\[^}]*\}`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// CleanText removes markup from a subtitle line, collapses whitespace and
// normalizes the result to NFC
func CleanText(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = assOverrideRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParseSRT reads SubRip entries from r. Entries with unreadable timing or
// with no text left after cleaning are skipped.
func ParseSRT(r io.Reader) ([]exercise.TimedTextSegment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		segs  []exercise.TimedTextSegment
		block []string
	)
	flush := func() {
		if seg, ok := parseBlock(block, len(segs)+1); ok {
			segs = append(segs, seg)
		}
		block = block[:0]
	}

	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			if len(block) > 0 {
				flush()
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}
	if len(block) > 0 {
		flush()
	}

	if len(segs) == 0 {
		return nil, ErrNoSegments
	}
	return segs, nil
}

func parseBlock(lines []string, fallbackIndex int) (exercise.TimedTextSegment, bool) {
	timing := -1
	for i, l := range lines {
		if timingRe.MatchString(l) {
			timing = i
			break
		}
	}
	if timing < 0 {
		return exercise.TimedTextSegment{}, false
	}

	index := fallbackIndex
	if timing > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(lines[timing-1])); err == nil {
			index = n
		}
	}

	m := timingRe.FindStringSubmatch(lines[timing])
	start := clock(m[1], m[2], m[3], m[4])
	end := clock(m[5], m[6], m[7], m[8])
	if end <= start {
		return exercise.TimedTextSegment{}, false
	}

	text := CleanText(strings.Join(lines[timing+1:], " "))
	if text == "" {
		return exercise.TimedTextSegment{}, false
	}

	return exercise.TimedTextSegment{Index: index, StartMs: start, EndMs: end, Text: text}, true
}

// clock converts the captured h, m, s and fraction fields to milliseconds.
// Short fractions are read as decimals, so ",5" is 500ms.
func clock(h, m, s, frac string) int64 {
	hh, _ := strconv.ParseInt(h, 10, 64)
	mm, _ := strconv.ParseInt(m, 10, 64)
	ss, _ := strconv.ParseInt(s, 10, 64)
	for len(frac) < 3 {
		frac += "0"
	}
	ms, _ := strconv.ParseInt(frac, 10, 64)
	return ((hh*60+mm)*60+ss)*1000 + ms
}

// FormatTimestamp renders milliseconds as an SRT timestamp (HH:MM:SS,mmm)
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
