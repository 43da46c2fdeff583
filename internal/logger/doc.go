// Package logger provides the structured diagnostic logger used across
// listenfill. It wraps zap's SugaredLogger so callers log with key-value
// pairs without importing zap directly.
package logger
