package subtitle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// Track is a loaded subtitle file. Offset shifts the subtitles against the
// video: a positive offset means subtitles appear later.
type Track struct {
	Path     string
	Segments []exercise.TimedTextSegment
	Offset   int64
}

// LoadFile reads and parses an .srt file. UTF-8 (with or without BOM) is
// expected; files that are not valid UTF-8 are decoded as Latin-1.
func LoadFile(path string) (*Track, error) {
	if !strings.EqualFold(filepath.Ext(path), ".srt") {
		return nil, fmt.Errorf("unsupported subtitle format %q, expected .srt", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode subtitle file: %w", err)
		}
	}

	segs, err := ParseSRT(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Track{Path: path, Segments: segs}, nil
}

// SegmentAt returns the segment on screen at playback time ms, with the
// track offset applied. Both ends of a segment are inclusive.
func (t *Track) SegmentAt(ms int64) (exercise.TimedTextSegment, bool) {
	at := ms - t.Offset
	for _, s := range t.Segments {
		if s.StartMs <= at && at <= s.EndMs {
			return s, true
		}
	}
	return exercise.TimedTextSegment{}, false
}

// SegmentsInRange returns all segments overlapping [startMs, endMs]
func (t *Track) SegmentsInRange(startMs, endMs int64) []exercise.TimedTextSegment {
	from, to := startMs-t.Offset, endMs-t.Offset
	var out []exercise.TimedTextSegment
	for _, s := range t.Segments {
		if s.StartMs <= to && s.EndMs >= from {
			out = append(out, s)
		}
	}
	return out
}

const (
	maxGapMs      = 5000
	minDurationMs = 500
	maxDurationMs = 10000
)

// TimingReport summarizes timing problems found by Validate
type TimingReport struct {
	Valid       bool
	Issues      []string
	Suggestions []string
	Overlaps    int
	Gaps        int
	TooShort    int
	TooLong     int
}

// Validate checks the track against a video length in milliseconds.
// A videoMs of zero skips the length check.
func (t *Track) Validate(videoMs int64) TimingReport {
	var r TimingReport
	if len(t.Segments) == 0 {
		r.Issues = append(r.Issues, "No subtitle data")
		return r
	}

	var lastEnd int64
	for i, s := range t.Segments {
		lastEnd = max(lastEnd, s.EndMs)
		if d := s.Duration(); d < minDurationMs {
			r.TooShort++
		} else if d > maxDurationMs {
			r.TooLong++
		}
		if i == 0 {
			continue
		}
		prev := t.Segments[i-1]
		if prev.EndMs > s.StartMs {
			r.Overlaps++
		}
		if s.StartMs-prev.EndMs > maxGapMs {
			r.Gaps++
		}
	}

	if videoMs > 0 && lastEnd+t.Offset > videoMs {
		r.Issues = append(r.Issues, fmt.Sprintf("Subtitle end time (%s) exceeds video duration (%s)",
			FormatTimestamp(lastEnd+t.Offset), FormatTimestamp(videoMs)))
		r.Suggestions = append(r.Suggestions, "Consider adjusting subtitle time offset")
	}
	if r.Overlaps > 0 {
		r.Issues = append(r.Issues, fmt.Sprintf("Found %d subtitle time overlaps", r.Overlaps))
	}
	if float64(r.Gaps) > float64(len(t.Segments))*0.3 {
		r.Issues = append(r.Issues, fmt.Sprintf("Found %d subtitle intervals too large", r.Gaps))
		r.Suggestions = append(r.Suggestions, "Check subtitle and video synchronization")
	}
	if r.TooShort > 0 {
		r.Issues = append(r.Issues, fmt.Sprintf("%d subtitles have too short duration", r.TooShort))
	}
	if r.TooLong > 0 {
		r.Issues = append(r.Issues, fmt.Sprintf("%d subtitles have too long duration", r.TooLong))
	}

	r.Valid = len(r.Issues) == 0
	return r
}
