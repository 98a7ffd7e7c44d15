package core

import "errors"

// Common errors.
var (
	ErrNotFound          = errors.New("no persisted state")
	ErrCorrupt           = errors.New("persisted state is corrupt")
	ErrReadOnly          = errors.New("repository is in read-only mode")
	ErrBoardNotFound     = errors.New("board not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoActiveBoard     = errors.New("no active board")
	ErrInvalidTransition = errors.New("invalid note state transition")
	ErrInvalidGrid       = errors.New("grid cell size must be positive")
)
