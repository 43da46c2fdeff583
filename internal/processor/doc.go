// Package processor implements the command-line workflow: it loads
// subtitle files, runs exercise generation in the background worker,
// exports the results and saves them to the library, or hands control
// to the GUI when no file is given.
package processor
