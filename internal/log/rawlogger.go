package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger records the exact text exchanged with the preprocessor.
type RawLogger interface {
	Log(in bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log writes one transcript block. in=true is text sent to the
// preprocessor's stdin, in=false is text read from its stdout.
func (r *rawLogger) Log(in bool, data []byte) {
	if r.w == nil {
		return
	}

	dir := "<- stdout"
	if in {
		dir = "-> stdin"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d bytes\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		len(data))
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}

	r.mu.Lock()
	_, _ = io.WriteString(r.w, b.String())
	r.mu.Unlock()
}
