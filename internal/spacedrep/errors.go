package spacedrep

import "fmt"

// InvalidInputError reports a caller bug: an unknown mode, an empty topic
// or an impossible response time. Nothing is recorded when it is returned.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistError reports that a result was applied in memory but the
// snapshot could not be written. The returned schedule is still current.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist schedules: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
