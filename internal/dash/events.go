package dash

import "time"

// Event messages consumed by the dashboard. Producers (watcher, worker
// supervisor, server manager) run on their own goroutines and deliver
// these through the bubbletea program, which serializes them into a
// single ordered stream, so the dashboard itself never locks.

// BuildFileMsg marks a file as entering or leaving the in-progress
// build set.
type BuildFileMsg struct {
	Path     string
	Building bool
}

// WorkerOutputMsg appends a chunk of output to a worker. The worker
// record is created on first reference.
type WorkerOutputMsg struct {
	ID    string
	Chunk string
}

// WorkerStateMsg sets a worker's status badge. A nil State leaves the
// current badge untouched.
type WorkerStateMsg struct {
	ID    string
	State *Badge
}

// WorkerDoneMsg marks a worker as finished. Err, when non-nil, sticks:
// later completions cannot clear an error already recorded.
type WorkerDoneMsg struct {
	ID  string
	Err error
}

// WorkerResetMsg discards a worker's accumulated state ahead of a
// relaunch.
type WorkerResetMsg struct {
	ID string
}

// ConsoleMsg appends lines to the console section.
type ConsoleMsg struct {
	Level Level
	Lines []string
}

// ServerStartMsg replaces the dev server snapshot wholesale. IPs are
// ordered with the primary interface address first.
type ServerStartMsg struct {
	StartTime time.Time
	Hostname  string
	Port      int
	Protocol  string
	IPs       []string
}

// InstallOutputMsg appends a chunk of dependency-install output and
// marks the install phase active.
type InstallOutputMsg struct {
	Chunk string
}

// InstallDoneMsg ends the install phase.
type InstallDoneMsg struct{}
