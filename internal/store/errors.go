package store

import (
	"errors"
	"fmt"
)

// ErrSpaceNotFound is returned when a referenced parking space id does not
// exist.
var ErrSpaceNotFound = errors.New("parking_space not found")

// ErrNoActiveSession is returned by check-out and payment flows when the
// plate has no open session at the space.
var ErrNoActiveSession = errors.New("Active check-in not found")

// AlreadyCheckedInError reports a duplicate check-in attempt. It carries
// the id of the open session so the caller can surface it.
type AlreadyCheckedInError struct {
	ExistingID int64
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("This vehicle is already checked-in (id=%d)", e.ExistingID)
}
