// Package logger wires logrus into the editor console: a hook captures
// every entry into an in-memory line buffer the console panel reads,
// while logrus keeps writing formatted output to its usual destination.
package logger

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// maxConsoleLines bounds the in-memory buffer; old lines are dropped first.
const maxConsoleLines = 1000

// ConsoleLine is a single captured log entry.
type ConsoleLine struct {
	Level   logrus.Level
	Message string
}

// Console stores recent log lines in memory for the editor console panel.
// Install it on a logrus logger with Attach.
type Console struct {
	mu    sync.Mutex
	lines []ConsoleLine
}

// NewConsole returns an empty console buffer.
func NewConsole() *Console {
	return &Console{lines: make([]ConsoleLine, 0, 64)}
}

// Attach installs the console as a hook on log and sets the timestamped
// text format the editor uses.
func (c *Console) Attach(log *logrus.Logger) {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.AddHook(c)
}

// Levels implements logrus.Hook; the console captures everything.
func (c *Console) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook, appending the entry to the buffer.
func (c *Console) Fire(entry *logrus.Entry) error {
	line := ConsoleLine{Level: entry.Level, Message: entry.Message}
	if len(entry.Data) > 0 {
		line.Message = fmt.Sprintf("%s %v", entry.Message, entry.Data)
	}

	c.mu.Lock()
	c.lines = append(c.lines, line)
	if len(c.lines) > maxConsoleLines {
		c.lines = c.lines[len(c.lines)-maxConsoleLines:]
	}
	c.mu.Unlock()
	return nil
}

// Lines returns a copy of all buffered lines.
func (c *Console) Lines() []ConsoleLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ConsoleLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the buffer.
func (c *Console) Clear() {
	c.mu.Lock()
	c.lines = c.lines[:0]
	c.mu.Unlock()
}
