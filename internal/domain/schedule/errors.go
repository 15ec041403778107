package schedule

import "errors"

// ErrShiftNotFound aborts a generation call before any deletion happens.
var ErrShiftNotFound = errors.New("shift_not_found")
