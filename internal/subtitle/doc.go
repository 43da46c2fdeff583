// Package subtitle reads SubRip (.srt) files into timed text segments and
// answers which segment is on screen at a given playback time.
package subtitle
