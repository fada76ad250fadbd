// Package diagctx keeps a bounded stack of diagnostic messages attached to
// the call chain, so that an error handler far from the point of failure
// can report the whole chain of context.
//
// # Usage
//
// Push a frame before doing work that may fail and pop it when the work
// completes:
//
//	stack, err := diagctx.New[Message](16, diagctx.WithCleanup(releaseMessage))
//	if err != nil {
//	    return err
//	}
//
//	id, msg := stack.Push()
//	if msg != nil {
//	    *msg = newMessage("parsing %s", path)
//	}
//	parse(path)
//	stack.Pop(id)
//
// # Panics and Reconciliation
//
// When work is abandoned by a panic, the frames pushed by the abandoned
// functions are never popped. The ancestor that recovers calls [Stack.Get]
// with its own id: every frame is reported to the visitor, outermost first,
// and the frames above the ancestor are discarded so that the stack is
// coherent again.
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        stack.Get(id, func(id diagctx.ID, msg *Message) {
//	            if msg == nil {
//	                fmt.Fprintln(os.Stderr, "??? (no memory available)")
//	                return
//	            }
//	            fmt.Fprintln(os.Stderr, msg)
//	        })
//	    }
//	}()
//
// Passing [All] only reports the frames and never discards anything.
//
// # Capacity
//
// A Stack stores at most its capacity messages. Deeper pushes are virtual:
// Push returns a nil message, but depth bookkeeping stays exact so Pop and
// Get keep working, and the visitor sees nil for those frames.
//
// # Concurrency
//
// A Stack is not safe for concurrent use. Give each goroutine its own.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package diagctx
