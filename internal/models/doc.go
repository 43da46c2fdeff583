// Package models lists the chat models available at the configured
// text-generation service, so users can pick one for remote generation.
package models
