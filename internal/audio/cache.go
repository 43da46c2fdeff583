package audio

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Speaker synthesizes each sentence once and keeps the WAV files in a
// cache directory
type Speaker struct {
	provider Provider
	cacheDir string
	language string

	mu sync.Mutex
}

// NewSpeaker creates a speaker that caches the output of provider
func NewSpeaker(provider Provider, cacheDir, language string) *Speaker {
	return &Speaker{
		provider: provider,
		cacheDir: cacheDir,
		language: language,
	}
}

// Path returns the cache file for text. The first two hash characters are
// used as a subdirectory.
func (s *Speaker) Path(text string) string {
	h := md5.New()
	h.Write([]byte(s.provider.Name()))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(s.language)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(text)))
	hash := hex.EncodeToString(h.Sum(nil))
	return filepath.Join(s.cacheDir, hash[:2], hash[2:]+".wav")
}

// Audio returns the path of a WAV file speaking text, generating it on a
// cache miss
func (s *Speaker) Audio(ctx context.Context, text string) (string, error) {
	if err := ValidateText(text); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(text)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Partial output never lands under the cache name
	partial := strings.TrimSuffix(path, ".wav") + ".part.wav"
	if err := s.provider.GenerateAudio(ctx, text, partial); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("%s: %w", s.provider.Name(), err)
	}
	if err := os.Rename(partial, path); err != nil {
		return "", fmt.Errorf("failed to store audio in cache: %w", err)
	}
	return path, nil
}

// CacheStats returns the number and total size of cached files
func (s *Speaker) CacheStats() (fileCount int, totalSize int64, err error) {
	err = filepath.WalkDir(s.cacheDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		fileCount++
		totalSize += info.Size()
		return nil
	})
	return fileCount, totalSize, err
}
