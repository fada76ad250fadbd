package linecount

import (
	"bytes"
	"fmt"
	"sync"
)

var bufferPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Message is one context entry. Its text lives in a pooled buffer that is
// handed back by releaseMessage when the frame is reclaimed.
type Message struct {
	buf *bytes.Buffer
}

func newMessage(format string, args ...any) Message {
	b := bufferPool.Get().(*bytes.Buffer)
	fmt.Fprintf(b, format, args...)
	return Message{buf: b}
}

// String returns the message text.
func (m *Message) String() string {
	if m.buf == nil {
		return ""
	}
	return m.buf.String()
}

func releaseMessage(m *Message) {
	if m.buf == nil {
		return
	}
	m.buf.Reset()
	bufferPool.Put(m.buf)
	m.buf = nil
}
