package diagctx

// depthTracker counts the logical nesting depth, which may exceed the
// number of slots.
type depthTracker struct {
	top int
}

// advance returns the depth of a new frame and grows the stack by one.
func (d *depthTracker) advance() int {
	depth := d.top
	d.top++
	return depth
}

// retreatTo shrinks the stack so that depth becomes the new top.
// It reports false, leaving top untouched, if depth is above top.
func (d *depthTracker) retreatTo(depth int) bool {
	if depth < 0 || depth > d.top {
		return false
	}
	d.top = depth
	return true
}
