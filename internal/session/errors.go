package session

import (
	"errors"
	"fmt"
)

// Intent failures. They are returned to the caller and recorded as the
// engine's current error; nothing retries them.
var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrNoPlanSelected    = errors.New("no plan selected")
	ErrNoDaySelected     = errors.New("no workout day selected")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrInvalidSetIndex   = errors.New("invalid set index")
	ErrSessionInProgress = errors.New("session already in progress")
	ErrNoActiveSession   = errors.New("no session in progress")
)

// PersistenceError wraps a storage failure. It is the only error class
// callers should expect to succeed on retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
