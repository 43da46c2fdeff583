package audio

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// playerFor picks the playback command for goos. lookPath reports whether
// a binary is installed.
func playerFor(goos string, lookPath func(string) (string, error), file string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "afplay", []string{file}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "/min", file}, nil
	case "linux", "freebsd", "openbsd":
		candidates := []struct {
			name string
			args []string
		}{
			{"paplay", []string{file}},
			{"aplay", []string{"-q", file}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}},
			{"play", []string{"-q", file}},
		}
		for _, c := range candidates {
			if _, err := lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, fmt.Errorf("no audio player found. Install pulseaudio-utils, alsa-utils, ffmpeg or sox")
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Play plays file and blocks until playback ends or ctx is cancelled
func Play(ctx context.Context, file string) error {
	name, args, err := playerFor(runtime.GOOS, exec.LookPath, file)
	if err != nil {
		return err
	}
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
