// Package tracelog implements the simulator's Trace Log: a thread-safe
// append of formatted lines with a timestamp prefix, fanned out to
// console, a buffered sequence for later file flush, or both, selected
// by the config's LogTo value.
package tracelog

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/ehrlich-b/go-ossim/internal/constants"
	"github.com/ehrlich-b/go-ossim/internal/interfaces"
)

// Log appends totally-ordered, timestamp-prefixed lines under a single
// mutex, so concurrent appends from worker goroutines and the
// dispatcher interleave at line granularity, never mid-line.
type Log struct {
	mu      sync.Mutex
	clock   interfaces.Clock
	logTo   constants.LogTo
	filePath string
	buffer  []string
	console *bufio.Writer
}

// New creates a Log that writes to out (typically os.Stdout) for
// Monitor/Both destinations and buffers for File/Both destinations.
func New(clock interfaces.Clock, logTo constants.LogTo, filePath string, out *os.File) *Log {
	return &Log{
		clock:    clock,
		logTo:    logTo,
		filePath: filePath,
		console:  bufio.NewWriter(out),
	}
}

// Append formats "Time:%10.6f, <body>" and routes it per logTo. It
// never reorders: insertion order is preserved both in the buffered
// sequence and, because console writes happen under the same lock, in
// any interleaving with concurrent Monitor output.
func (l *Log) Append(body string) {
	line := fmt.Sprintf("Time:%10.6f, %s", l.clock.Lap(), body)

	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.logTo {
	case constants.LogMonitor:
		fmt.Fprintln(l.console, line)
		l.console.Flush()
	case constants.LogFile:
		l.buffer = append(l.buffer, line)
	case constants.LogBoth:
		fmt.Fprintln(l.console, line)
		l.console.Flush()
		l.buffer = append(l.buffer, line)
	default:
		fmt.Fprintln(l.console, line)
		l.console.Flush()
	}
}

// Appendf is a convenience wrapper formatting body with fmt.Sprintf
// before appending.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the buffered sequence, in insertion order.
// Useful for tests asserting on trace content without touching disk.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.buffer))
	copy(out, l.buffer)
	return out
}

// Flush writes the buffered sequence to filePath in insertion order,
// if logTo calls for a file destination. It is a no-op for Monitor-only
// logs. A non-nil error should be treated as unrecoverable by the
// caller.
func (l *Log) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logTo != constants.LogFile && l.logTo != constants.LogBoth {
		return nil
	}

	f, err := os.Create(l.filePath)
	if err != nil {
		return fmt.Errorf("tracelog: open %s: %w", l.filePath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range l.buffer {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("tracelog: write %s: %w", l.filePath, err)
		}
	}
	return w.Flush()
}
