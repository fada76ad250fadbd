package diagctx

import (
	"errors"
	"testing"

	"github.com/bft-labs/diagctx/pkg/log"
)

type recordingLogger struct {
	log.NoopLogger
	debug []string
	warn  []log.Field
}

func (r *recordingLogger) Debug(msg string, fields ...log.Field) {
	r.debug = append(r.debug, msg)
}

func (r *recordingLogger) Warn(msg string, fields ...log.Field) {
	r.warn = append(r.warn, fields...)
}

func TestStack_LogsViolationsOnly(t *testing.T) {
	rec := &recordingLogger{}
	s, err := New[testMsg](4, WithLogger[testMsg](rec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, _ := s.Push()
	s.Push()
	_ = s.Pop(a)

	var logged error
	for _, f := range rec.warn {
		if e, ok := f.Value.(error); ok {
			logged = e
		}
	}
	if !errors.Is(logged, ErrNotInnermost) {
		t.Errorf("logged error = %v, want ErrNotInnermost", logged)
	}

	// Reconciliation is a normal path and stays silent.
	if err := s.Get(a, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(rec.debug) != 0 {
		t.Errorf("debug lines = %v, want none", rec.debug)
	}
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	s, err := New[testMsg](1, WithLogger[testMsg](nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Pop(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Pop(0) error = %v, want ErrOutOfRange", err)
	}
}
