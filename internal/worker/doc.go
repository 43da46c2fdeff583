// Package worker runs one exercise generation at a time in the background
// and reports its lifecycle as a stream of events, so a UI can show
// progress without blocking on the engine.
package worker
