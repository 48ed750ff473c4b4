package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// stderrLogger prints "[level] msg key=value ..." lines. Keys are sorted so
// the output is stable.
type stderrLogger struct {
	mu  sync.Mutex
	out io.Writer
}

func newStderrLogger(out io.Writer) *stderrLogger {
	return &stderrLogger{out: out}
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log("debug", msg, fields)
}

func (l *stderrLogger) Info(msg string, fields map[string]interface{}) {
	l.log("info", msg, fields)
}

func (l *stderrLogger) Warn(msg string, fields map[string]interface{}) {
	l.log("warn", msg, fields)
}

func (l *stderrLogger) Error(msg string, fields map[string]interface{}) {
	l.log("error", msg, fields)
}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var line strings.Builder

	fmt.Fprintf(&line, "[%s] %s", level, msg)

	for _, key := range keys {
		fmt.Fprintf(&line, " %s=%v", key, fields[key])
	}

	line.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.out, line.String())
}
