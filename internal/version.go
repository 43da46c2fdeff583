package internal

// Version is the current listenfill release
const Version = "0.4.0"
