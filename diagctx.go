// Package diagctx keeps a bounded stack of diagnostic messages attached to
// the call chain, for reporting by an error handler after a panic.
//
// Example usage:
//
//	stack, err := core.New[string](16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id, msg := stack.Push()
//	if msg != nil {
//	    *msg = "loading config"
//	}
//	...
//	stack.Pop(id)
//
// See package github.com/bft-labs/diagctx/pkg/diagctx for the full
// documentation.
package diagctx

import (
	core "github.com/bft-labs/diagctx/pkg/diagctx"
	"github.com/bft-labs/diagctx/pkg/log"
)

// Stack is a bounded stack of diagnostic messages of type M.
type Stack[M any] = core.Stack[M]

// ID identifies a pushed frame by its depth.
type ID = core.ID

// Visitor receives the frames reported by Stack.Get.
type Visitor[M any] = core.Visitor[M]

// Option configures a Stack.
type Option[M any] = core.Option[M]

// Policy selects how contract violations are reported.
type Policy = core.Policy

const (
	// All makes Stack.Get report every frame without truncating.
	All = core.All

	// Invalid is the id of a refused push.
	Invalid = core.Invalid

	PolicyReturn = core.PolicyReturn
	PolicyPanic  = core.PolicyPanic
)

// Errors returned by the stack, re-exported for errors.Is checks.
var (
	ErrInvalidCapacity = core.ErrInvalidCapacity
	ErrBufferTooSmall  = core.ErrBufferTooSmall
	ErrNotInnermost    = core.ErrNotInnermost
	ErrOutOfRange      = core.ErrOutOfRange
	ErrReentrant       = core.ErrReentrant
)

// New creates a Stack able to store capacity messages.
func New[M any](capacity int, opts ...Option[M]) (*Stack[M], error) {
	return core.New[M](capacity, opts...)
}

// WithCleanup sets the routine run on each reclaimed message.
func WithCleanup[M any](fn func(msg *M)) Option[M] {
	return core.WithCleanup(fn)
}

// WithBuffer makes the Stack store messages in buf.
func WithBuffer[M any](buf []M) Option[M] {
	return core.WithBuffer(buf)
}

// WithLogger sets the logger used for contract violations.
func WithLogger[M any](logger log.Logger) Option[M] {
	return core.WithLogger[M](logger)
}

// WithPolicy sets the contract violation policy.
func WithPolicy[M any](p Policy) Option[M] {
	return core.WithPolicy[M](p)
}
