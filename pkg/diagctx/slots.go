package diagctx

// slots is the fixed-capacity message storage. Slot i backs the frame at
// depth i and is only ever touched while i < len(buf).
type slots[M any] struct {
	buf     []M
	used    []bool
	cleanup func(*M)
}

func newSlots[M any](buf []M, capacity int, cleanup func(*M)) slots[M] {
	if buf == nil {
		buf = make([]M, capacity)
	}
	return slots[M]{
		buf:     buf[:capacity:capacity],
		used:    make([]bool, capacity),
		cleanup: cleanup,
	}
}

func (s *slots[M]) capacity() int {
	return len(s.buf)
}

// acquire hands slot depth to a new owner. The contents are whatever the
// previous owner left after cleanup.
func (s *slots[M]) acquire(depth int) *M {
	s.used[depth] = true
	return &s.buf[depth]
}

// at returns the stored message of an occupied slot.
func (s *slots[M]) at(depth int) *M {
	return &s.buf[depth]
}

// release runs cleanup on slot depth exactly once and frees it.
func (s *slots[M]) release(depth int) {
	if !s.used[depth] {
		return
	}
	if s.cleanup != nil {
		s.cleanup(&s.buf[depth])
	}
	var zero M
	s.buf[depth] = zero
	s.used[depth] = false
}
