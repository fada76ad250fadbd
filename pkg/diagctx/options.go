package diagctx

import "github.com/bft-labs/diagctx/pkg/log"

// Policy selects how a Stack reacts to contract violations such as popping
// a frame that is not innermost.
type Policy int

const (
	// PolicyReturn logs the violation, leaves the stack untouched and
	// returns the error to the caller. This is the default.
	PolicyReturn Policy = iota

	// PolicyPanic panics with the violation error. Use it in tests to fail
	// fast on broken nesting.
	PolicyPanic
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyReturn:
		return "return"
	case PolicyPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Option configures optional behavior of a Stack.
type Option[M any] func(*options[M])

type options[M any] struct {
	cleanup func(*M)
	buffer  []M
	logger  log.Logger
	policy  Policy
}

func defaultOptions[M any]() options[M] {
	return options[M]{
		logger: log.NewNoopLogger(),
		policy: PolicyReturn,
	}
}

// WithCleanup sets the routine run on a stored message when its frame is
// reclaimed by Pop or by the truncation step of Get. It is never run for
// frames that had no storage. fn must not call back into the stack.
func WithCleanup[M any](fn func(msg *M)) Option[M] {
	return func(o *options[M]) {
		o.cleanup = fn
	}
}

// WithBuffer makes the Stack store messages in buf instead of allocating
// its own storage. buf must hold at least capacity messages and must not be
// used by anything else while the Stack is alive.
func WithBuffer[M any](buf []M) Option[M] {
	return func(o *options[M]) {
		o.buffer = buf
	}
}

// WithLogger sets the logger used to report contract violations. If not
// provided, nothing is logged.
func WithLogger[M any](logger log.Logger) Option[M] {
	return func(o *options[M]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPolicy sets the contract violation policy.
func WithPolicy[M any](p Policy) Option[M] {
	return func(o *options[M]) {
		o.policy = p
	}
}
