package diagctx

// Visitor receives one frame during Get. msg is nil when the frame's
// message was dropped because the stack was over capacity; the visitor
// must not retain msg after it returns.
type Visitor[M any] func(id ID, msg *M)

// visit streams the first n frames to v in ascending depth order.
// The stack refuses re-entrant calls until v has returned, even if v panics.
func (s *Stack[M]) visit(n int, v Visitor[M]) {
	s.busy = true
	defer func() { s.busy = false }()

	stored := min(n, s.slots.capacity())
	for depth := 0; depth < stored; depth++ {
		v(ID(depth), s.slots.at(depth))
	}
	for depth := stored; depth < n; depth++ {
		v(ID(depth), nil)
	}
}
