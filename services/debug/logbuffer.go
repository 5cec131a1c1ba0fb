package debug

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/artaltay/miniapp/lib/mylog"
	"github.com/artaltay/miniapp/lib/mytime"
)

const logRingSize = 200

type LogEntry struct {
	Component  string         `json:"component"`
	TraceLabel string         `json:"traceLabel"`
	Severity   mylog.Severity `json:"severity"`
	Message    string         `json:"message"`
	LoggedAt   time.Time      `json:"loggedAt"`
}

// LogBuffer keeps the most recent log lines in memory so the in-app
// debug panel can show them without access to stderr.
type LogBuffer struct {
	mutex   sync.Mutex
	nower   mytime.Nower
	entries []LogEntry
}

func NewLogBuffer(nower mytime.Nower) *LogBuffer {
	return &LogBuffer{
		nower: nower,
	}
}

// Install makes every logger created from now on tee its lines into
// the buffer. Call it once at startup, before services construct
// their loggers.
func (b *LogBuffer) Install() {
	inner := mylog.New
	mylog.New = func(name string) mylog.Logger {
		return teeLogger{
			componentName: name,
			inner:         inner(name),
			buffer:        b,
		}
	}
}

func (b *LogBuffer) add(entry LogEntry) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.entries = append(b.entries, entry)
	if len(b.entries) > logRingSize {
		b.entries = b.entries[len(b.entries)-logRingSize:]
	}
}

// Entries returns the buffered lines, most recent first.
func (b *LogBuffer) Entries() []LogEntry {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	entries := make([]LogEntry, 0, len(b.entries))
	for i := len(b.entries) - 1; i >= 0; i-- {
		entries = append(entries, b.entries[i])
	}

	return entries
}

type teeLogger struct {
	componentName string
	inner         mylog.Logger
	buffer        *LogBuffer
}

func (l teeLogger) Log(ctx context.Context, traceLabel string, severity mylog.Severity, format string, a ...any) {
	l.inner.Log(ctx, traceLabel, severity, format, a...)
	l.buffer.add(LogEntry{
		Component:  l.componentName,
		TraceLabel: traceLabel,
		Severity:   severity,
		Message:    fmt.Sprintf(format, a...),
		LoggedAt:   l.buffer.nower.Now(),
	})
}
