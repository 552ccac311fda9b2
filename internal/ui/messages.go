package ui

import (
	"sync"
	"time"
)

// Message is one status line message
type Message struct {
	Text      string
	Error     bool
	Timestamp time.Time
}

// MessageLogger keeps the last status messages. The newest one is shown in
// the status line until it expires.
type MessageLogger struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
}

// NewMessageLogger creates a logger keeping maxSize messages, each shown
// for ttl
func NewMessageLogger(maxSize int, ttl time.Duration) *MessageLogger {
	return &MessageLogger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

// AddMessage records an informational message
func (ml *MessageLogger) AddMessage(text string) {
	ml.add(text, false)
}

// AddError records an error message
func (ml *MessageLogger) AddError(text string) {
	ml.add(text, true)
}

func (ml *MessageLogger) add(text string, isErr bool) {
	if text == "" {
		return
	}
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, Error: isErr, Timestamp: ml.now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Current returns the newest message while it has not expired
func (ml *MessageLogger) Current() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return Message{}, false
	}
	last := ml.messages[len(ml.messages)-1]
	if ml.ttl > 0 && ml.now().Sub(last.Timestamp) > ml.ttl {
		return Message{}, false
	}
	return last, true
}

// Clear drops all messages
func (ml *MessageLogger) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = ml.messages[:0]
}

