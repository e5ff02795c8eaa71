package scheduler

import "errors"

var (
	// ErrNoHost indicates there is no client environment to draw into yet.
	ErrNoHost = errors.New("scheduler: no host")

	// ErrNoSurface indicates the host has no drawable area.
	ErrNoSurface = errors.New("scheduler: host has no drawing surface")

	ErrRunning = errors.New("scheduler: already running")

	// ErrStopped indicates Start after Stop; a stopped scheduler cannot restart.
	ErrStopped = errors.New("scheduler: stopped")
)
