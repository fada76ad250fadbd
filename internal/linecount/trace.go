package linecount

import (
	"io"
	"strings"

	"github.com/bft-labs/diagctx/pkg/diagctx"
)

// Unavailable is printed for frames whose message was dropped.
const Unavailable = "??? (no memory available)"

// Trace returns a visitor that writes one line per frame to w, indenting
// the first frame level times and each following frame one more time.
func Trace(w io.Writer, indent string, level int) diagctx.Visitor[Message] {
	return func(_ diagctx.ID, msg *Message) {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(indent, level))
		if msg == nil {
			sb.WriteString(Unavailable)
		} else {
			sb.WriteString(msg.String())
		}
		sb.WriteByte('\n')
		_, _ = io.WriteString(w, sb.String())
		level++
	}
}
