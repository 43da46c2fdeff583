// Package library persists the video/subtitle pairs a learner has opened,
// together with their generated exercises and where they stopped, in a
// local SQLite database.
package library
