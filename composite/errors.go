package composite

import "errors"

// Common errors
var (
	ErrInvalidIndex = errors.New("invalid tree index")
	ErrStopWalk     = errors.New("walk stopped")
)

// IsStopWalk returns true if the error is ErrStopWalk.
func IsStopWalk(err error) bool {
	return errors.Is(err, ErrStopWalk)
}
