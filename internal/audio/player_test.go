package audio

import (
	"errors"
	"reflect"
	"testing"
)

func lookPathFor(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, i := range installed {
			if i == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestPlayerFor(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		have     []string
		wantCmd  string
		wantArgs []string
		wantErr  bool
	}{
		{"macos", "darwin", nil, "afplay", []string{"a.wav"}, false},
		{"windows", "windows", nil, "cmd", []string{"/c", "start", "/min", "a.wav"}, false},
		{"linux prefers paplay", "linux", []string{"aplay", "paplay"}, "paplay", []string{"a.wav"}, false},
		{"linux aplay", "linux", []string{"aplay", "ffplay"}, "aplay", []string{"-q", "a.wav"}, false},
		{"linux sox", "linux", []string{"play"}, "play", []string{"-q", "a.wav"}, false},
		{"linux nothing", "linux", nil, "", nil, true},
		{"plan9", "plan9", nil, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := playerFor(tt.goos, lookPathFor(tt.have...), "a.wav")
			if (err != nil) != tt.wantErr {
				t.Fatalf("playerFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cmd != tt.wantCmd || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("playerFor() = %s %v, want %s %v", cmd, args, tt.wantCmd, tt.wantArgs)
			}
		})
	}
}
