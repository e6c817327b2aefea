package store

import "fmt"

// MalformedSnapshotError indicates the stored snapshot could not be
// parsed: corrupt JSON, a schema violation or an incompatible format.
type MalformedSnapshotError struct {
	Sequence int64
	Err      error
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot (sequence %d): %v", e.Sequence, e.Err)
}

func (e *MalformedSnapshotError) Unwrap() error { return e.Err }
