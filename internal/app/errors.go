package app

import "errors"

// ErrAlreadyRunning is returned when Run is called twice.
var ErrAlreadyRunning = errors.New("application already running")
