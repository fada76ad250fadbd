package diagctx

import "errors"

// Contract violations. They are returned (or panicked with, see [Policy])
// wrapped with the offending id and depth, and can be checked with errors.Is.
var (
	// ErrInvalidCapacity is returned by New when capacity is negative.
	ErrInvalidCapacity = errors.New("diagctx: invalid capacity")

	// ErrBufferTooSmall is returned by New when the buffer given to
	// WithBuffer holds fewer than capacity messages.
	ErrBufferTooSmall = errors.New("diagctx: buffer too small")

	// ErrNotInnermost is returned by Pop when id is not the innermost frame.
	ErrNotInnermost = errors.New("diagctx: frame is not innermost")

	// ErrOutOfRange is returned when an id refers to a frame above the
	// current depth.
	ErrOutOfRange = errors.New("diagctx: frame out of range")

	// ErrReentrant is returned when the stack is used from inside a visitor
	// or a cleanup routine.
	ErrReentrant = errors.New("diagctx: re-entrant call")
)
