// Package batch reads lists of subtitle files to process in one run.
package batch
