package server

import (
	"bytes"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console is an io.Writer that fans complete log lines out to subscribers.
// Install it as a log sink next to stderr to mirror server logs to clients.
type Console struct {
	mu          sync.Mutex
	partial     []byte
	subscribers map[chan ConsoleMessage]struct{}
}

// NewConsole creates a console with no subscribers
func NewConsole() *Console {
	return &Console{subscribers: make(map[chan ConsoleMessage]struct{})}
}

// Subscribe returns a channel of future messages and a function that
// unsubscribes. Slow subscribers miss messages rather than block logging.
func (c *Console) Subscribe() (<-chan ConsoleMessage, func()) {
	ch := make(chan ConsoleMessage, 50)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		delete(c.subscribers, ch)
		c.mu.Unlock()
	}
}

// Write implements io.Writer
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.partial = append(c.partial, p...)
	for {
		i := bytes.IndexByte(c.partial, '\n')
		if i < 0 {
			break
		}
		line := stripANSI(string(c.partial[:i]))
		c.partial = c.partial[i+1:]
		if line == "" {
			continue
		}

		msg := ConsoleMessage{Message: line, Timestamp: time.Now(), Level: levelOf(line)}
		for ch := range c.subscribers {
			select {
			case ch <- msg:
			default:
				// Channel full, skip
			}
		}
	}
	return len(p), nil
}

// levelOf maps the level tag of a formatted log line
func levelOf(line string) string {
	switch {
	case strings.Contains(line, "[ERROR]"), strings.Contains(line, "[CRITICAL]"):
		return "error"
	case strings.Contains(line, "[WARNING]"):
		return "warning"
	default:
		return "info"
	}
}

// stripANSI removes terminal color sequences
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
