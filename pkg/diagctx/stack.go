package diagctx

import (
	"fmt"

	"github.com/bft-labs/diagctx/pkg/log"
)

// ID identifies a pushed frame. It is the depth of the frame, counted from
// the bottom of the stack starting at 0.
type ID uint

const (
	// All is passed to Get to visit every frame without truncating.
	All ID = ^ID(0)

	// Invalid is returned by Push when the push was refused.
	Invalid = All
)

// Stack is a bounded stack of diagnostic messages of type M.
//
// Frames deeper than the capacity are virtual: they are counted so that
// Pop and Get keep correct bookkeeping, but their message is dropped.
// A Stack must only be used by one goroutine at a time.
type Stack[M any] struct {
	slots    slots[M]
	depth    depthTracker
	logger   log.Logger
	policy   Policy
	busy     bool
}

// New creates a Stack able to store capacity messages. All message storage
// is allocated here (or taken from WithBuffer); Push and Pop never allocate.
func New[M any](capacity int, opts ...Option[M]) (*Stack[M], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	o := defaultOptions[M]()
	for _, opt := range opts {
		opt(&o)
	}
	if o.buffer != nil && len(o.buffer) < capacity {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrBufferTooSmall, len(o.buffer), capacity)
	}

	return &Stack[M]{
		slots:  newSlots(o.buffer, capacity, o.cleanup),
		logger: o.logger,
		policy: o.policy,
	}, nil
}

// Push adds a frame and returns its id with the location of its message.
// The location is nil when the stack is over capacity; the frame is still
// pushed and must still be popped. A non-nil location is not guaranteed to
// be zeroed: the caller must fully construct the message before any other
// call on the stack.
func (s *Stack[M]) Push() (ID, *M) {
	if s.busy {
		s.violation(fmt.Errorf("push: %w", ErrReentrant))
		return Invalid, nil
	}

	depth := s.depth.advance()
	if depth < s.slots.capacity() {
		return ID(depth), s.slots.acquire(depth)
	}
	return ID(depth), nil
}

// Pop removes the innermost frame, running the cleanup routine on its
// message if it has one. id must be the value returned by the matching Push.
func (s *Stack[M]) Pop(id ID) error {
	if s.busy {
		return s.violation(fmt.Errorf("pop %d: %w", id, ErrReentrant))
	}

	top := s.depth.top
	if id >= ID(top) {
		return s.violation(fmt.Errorf("pop %d at depth %d: %w", id, top, ErrOutOfRange))
	}
	if int(id) != top-1 {
		return s.violation(fmt.Errorf("pop %d at depth %d: %w", id, top, ErrNotInnermost))
	}

	depth := int(id)
	if depth < s.slots.capacity() {
		s.release(depth, depth)
	}
	s.depth.retreatTo(depth)
	return nil
}

// Get calls v for every frame on the stack, from the outermost to the
// innermost. Frames without storage are visited with a nil message.
//
// Unless id is All, Get then discards every frame above id, running the
// cleanup routine once per discarded message. This restores the stack after
// a panic skipped the Pop calls of the frames pushed after id. The frame id
// itself is kept. If nothing was abandoned, the truncation does nothing.
//
// v may be nil to only truncate. v must not call back into the stack.
func (s *Stack[M]) Get(id ID, v Visitor[M]) error {
	if s.busy {
		return s.violation(fmt.Errorf("get %d: %w", id, ErrReentrant))
	}

	n := s.depth.top
	if id != All && id >= ID(n) {
		return s.violation(fmt.Errorf("get %d at depth %d: %w", id, n, ErrOutOfRange))
	}

	if v != nil {
		s.visit(n, v)
	}
	if id == All {
		return nil
	}
	s.truncate(n, int(id)+1)
	return nil
}

// truncate reclaims the frames in [keep, n).
func (s *Stack[M]) truncate(n, keep int) {
	if n == keep {
		return
	}
	if stored := min(n, s.slots.capacity()); stored > keep {
		s.release(keep, stored-1)
	}
	s.depth.retreatTo(keep)
}

// release runs cleanup on the slots in [lo, hi], innermost first. The stack
// refuses re-entrant calls from the cleanup routine, even if it panics.
func (s *Stack[M]) release(lo, hi int) {
	s.busy = true
	defer func() { s.busy = false }()

	for depth := hi; depth >= lo; depth-- {
		s.slots.release(depth)
	}
}

// Depth returns the logical number of pushed frames, including virtual ones.
func (s *Stack[M]) Depth() int {
	return s.depth.top
}

// Capacity returns the number of messages the stack can store.
func (s *Stack[M]) Capacity() int {
	return s.slots.capacity()
}

// Stored returns the number of frames currently holding a message.
func (s *Stack[M]) Stored() int {
	return min(s.depth.top, s.slots.capacity())
}

func (s *Stack[M]) violation(err error) error {
	if s.policy == PolicyPanic {
		panic(err)
	}
	s.logger.Warn("diagctx contract violation",
		log.Err(err),
		log.Int("depth", s.depth.top),
	)
	return err
}
