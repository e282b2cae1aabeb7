package rulewatch

import "errors"

var (
	ErrInvalidDir     = errors.New("invalid rules directory")
	ErrAlreadyRunning = errors.New("rule watcher already running")
	ErrWatchFailed    = errors.New("failed to watch rules directory")
	ErrWatcherClosed  = errors.New("rule watcher closed")
	ErrNilBuild       = errors.New("nil build function")
)
