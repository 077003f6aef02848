package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrSessionAlreadyOpen   = errors.New("employee already has an open session")
	ErrSessionAlreadyClosed = errors.New("session has already been closed")
	ErrForbidden            = errors.New("not allowed to access another employee's time records")
)

// PersistenceError wraps any storage failure (connection loss, constraint
// violation) surfaced by the session repository. It is never retried here.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err unless it is nil or already a domain error.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSessionAlreadyOpen) || errors.Is(err, ErrSessionAlreadyClosed) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
