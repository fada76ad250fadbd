package linecount

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bft-labs/diagctx/pkg/diagctx"
	"github.com/bft-labs/diagctx/pkg/log"
)

// SampleText is processed when no input file is given.
const SampleText = "Hello World!\n" +
	"ABC def GHI jlk\n" +
	"Hello \x86 World!\n" +
	"\x97 test\n" +
	"\x80\x81\x82\n" +
	"THE END!"

// LineResult is the outcome of one line.
type LineResult struct {
	Source string
	Line   int
	Upper  int
	Err    *NonASCIIError
}

// Option configures a Counter.
type Option func(*options)

type options struct {
	out    io.Writer
	errOut io.Writer
	indent string
	logger log.Logger
	policy diagctx.Policy
}

// WithOutput sets where per-line counts are written. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithErrorOutput sets where error traces are written. Default: os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(o *options) { o.errOut = w }
}

// WithIndent sets the indentation unit of error traces.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithLogger sets the logger shared with the context stack.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPolicy sets the contract violation policy of the context stack.
func WithPolicy(p diagctx.Policy) Option {
	return func(o *options) { o.policy = p }
}

// Counter counts uppercase letters while keeping a diagnostic context stack.
// It is not safe for concurrent use.
type Counter struct {
	stack  *diagctx.Stack[Message]
	out    io.Writer
	errOut io.Writer
	indent string
	logger log.Logger
}

// NewCounter creates a Counter whose context stack stores capacity messages.
func NewCounter(capacity int, opts ...Option) (*Counter, error) {
	o := options{
		out:    os.Stdout,
		errOut: os.Stderr,
		indent: "  ",
		logger: log.NewNoopLogger(),
		policy: diagctx.PolicyReturn,
	}
	for _, opt := range opts {
		opt(&o)
	}

	stack, err := diagctx.New[Message](capacity,
		diagctx.WithCleanup(releaseMessage),
		diagctx.WithLogger[Message](o.logger),
		diagctx.WithPolicy[Message](o.policy),
	)
	if err != nil {
		return nil, fmt.Errorf("create context stack: %w", err)
	}

	return &Counter{
		stack:  stack,
		out:    o.out,
		errOut: o.errOut,
		indent: o.indent,
		logger: o.logger,
	}, nil
}

// Depth returns the current depth of the context stack.
func (c *Counter) Depth() int {
	return c.stack.Depth()
}

// Run processes SampleText when inputs is empty, otherwise every input file
// in order. It stops at the first file that cannot be read.
func (c *Counter) Run(inputs []string) ([]LineResult, error) {
	id := c.enter("main()")

	var results []LineResult
	var err error
	if len(inputs) == 0 {
		results = c.Process("", SampleText)
	}
	for _, path := range inputs {
		var res []LineResult
		res, err = c.RunFile(path)
		if err != nil {
			break
		}
		results = append(results, res...)
	}

	c.leave(id)
	return results, err
}

// RunFile processes a single input file.
func (c *Counter) RunFile(path string) ([]LineResult, error) {
	id := c.enter("file %s", path)

	b, err := os.ReadFile(path)
	if err != nil {
		c.leave(id)
		return nil, fmt.Errorf("read input: %w", err)
	}
	results := c.Process(path, string(b))

	c.leave(id)
	return results, nil
}

// Process counts uppercase letters of every line of text. A line holding a
// non-ASCII byte is reported on the error output and skipped.
func (c *Counter) Process(source, text string) []LineResult {
	id := c.enter("for_each_line()")

	var results []LineResult
	lineNumber := 0
	for {
		lineNumber++
		size := strings.IndexByte(text, '\n')
		if size < 0 {
			size = len(text)
		}

		res := c.processLine(id, lineNumber, text[:size])
		res.Source = source
		results = append(results, res)

		text = text[size:]
		if text == "" {
			break
		}
		text = text[1:]
	}

	c.leave(id)
	return results
}

// processLine recovers the non-ASCII panic raised below it and reconciles
// the stack down to owner, the frame of the line loop.
func (c *Counter) processLine(owner diagctx.ID, lineNumber int, line string) (res LineResult) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var nonASCII *NonASCIIError
		err, ok := r.(error)
		if !ok || !errors.As(err, &nonASCII) {
			panic(r)
		}

		fmt.Fprintf(c.errOut, "ERROR! %v\n", err)
		discarded := c.stack.Depth() - int(owner) - 1
		if gerr := c.stack.Get(owner, Trace(c.errOut, c.indent, 1)); gerr != nil {
			c.logger.Error("reconcile context stack", log.Err(gerr))
		}
		c.logger.Debug("line skipped",
			log.Int("line", lineNumber),
			log.Int("position", nonASCII.Position),
			log.Int("discarded_frames", discarded),
		)
		res = LineResult{Line: lineNumber, Err: nonASCII}
	}()

	id := c.enter("line %d", lineNumber)
	count := c.countUppercaseASCII(line)
	fmt.Fprintf(c.out, "Line %d: %d upper characters\n", lineNumber, count)
	c.leave(id)

	return LineResult{Line: lineNumber, Upper: count}
}

func (c *Counter) countUppercaseASCII(str string) int {
	id := c.enter("count_uppercase_ascii(\"%s\", %d)", str, len(str))

	count := 0
	for i := 0; i < len(str); i++ {
		ch := str[i]
		if ch >= 0x80 {
			c.enter("error: found '\\x%02X' at position %d", ch, i)
			// Neither frame is popped: the recover site reconciles them.
			panic(&NonASCIIError{Byte: ch, Position: i})
		}
		if ch >= 'A' && ch <= 'Z' {
			count++
		}
	}

	c.leave(id)
	return count
}

// ReportPending writes the frames still on the stack, if any, without
// touching them. It is meant to run at exit.
func (c *Counter) ReportPending(w io.Writer) {
	if c.stack.Depth() == 0 {
		return
	}
	fmt.Fprintf(w, "%d context frame(s) still pushed:\n", c.stack.Depth())
	_ = c.stack.Get(diagctx.All, Trace(w, c.indent, 1))
}

func (c *Counter) enter(format string, args ...any) diagctx.ID {
	id, msg := c.stack.Push()
	if msg != nil {
		*msg = newMessage(format, args...)
	}
	return id
}

// leave pops id on the normal path only; a panicking caller leaves its
// frames for the recover site. Violations are reported by the stack itself.
func (c *Counter) leave(id diagctx.ID) {
	_ = c.stack.Pop(id)
}
