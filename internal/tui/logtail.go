package tui

import (
	"strings"
	"sync"
)

// LogTail is an io.Writer keeping the last lines written to it, so log output
// can be shown inside the full-screen view.
type LogTail struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func NewLogTail(max int) *LogTail {
	if max < 1 {
		max = 1
	}
	return &LogTail{max: max}
}

func (l *LogTail) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r ")
		if line == "" {
			continue
		}
		l.lines = append(l.lines, line)
	}
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	return len(p), nil
}

func (l *LogTail) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
