package document

import (
	"errors"
	"fmt"
)

// Edit errors returned by tree operations. Commands and editor methods wrap
// these with context; callers match with errors.Is.
var (
	ErrIndexOutOfBounds     = errors.New("index out of bounds")
	ErrInvalidRange         = errors.New("invalid range")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidNode          = errors.New("invalid node")
	ErrOperationFailed      = errors.New("operation failed")
	ErrNoSelection          = errors.New("no selection")
)

// PathError reports an out-of-range index while walking a path. Depth is
// the path position that failed, Index the attempted child index, and Max
// the largest valid index at that depth (-1 when the node has no children).
type PathError struct {
	Depth int
	Index int
	Max   int
}

func (e *PathError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("path depth %d: index %d into node with no children", e.Depth, e.Index)
	}
	return fmt.Sprintf("path depth %d: index %d out of range (max %d)", e.Depth, e.Index, e.Max)
}

func (e *PathError) Unwrap() error { return ErrIndexOutOfBounds }
