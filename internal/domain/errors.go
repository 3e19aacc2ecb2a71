package domain

import "errors"

// ErrDataUnavailable reports that a source table could not be found. It is
// fatal for a session: nothing downstream of the loader may run.
var ErrDataUnavailable = errors.New("data unavailable")

// ErrUnknownState is returned when a lookup names a state outside the loaded data.
var ErrUnknownState = errors.New("unknown state")
