// Package audio turns exercise sentences into speech so they can be
// practised without a video. Speech comes from the OpenAI speech endpoint
// or a local espeak-ng, is cached on disk and played with an external
// player.
package audio
