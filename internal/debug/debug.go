// Package debug traces figdriver's parse and layout phases.
//
//   - One switch: FIGDRIVER_DEBUG=1 or --debug turns tracing on
//   - Disabled sessions are nil and every method on them is a no-op
//   - Each render gets its own session ID so interleaved traces can be separated
//   - JSON Lines by default, a pretty format for humans
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync/atomic"
	"time"
)

// enabled is the global debug flag, set once at startup.
var enabled atomic.Bool

// SetEnabled turns tracing on or off globally.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// InitFromEnv enables tracing when FIGDRIVER_DEBUG=1.
func InitFromEnv() {
	if os.Getenv("FIGDRIVER_DEBUG") == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether FIGDRIVER_DEBUG_PRETTY=1 asks for the pretty sink.
func PrettyFromEnv() bool {
	return os.Getenv("FIGDRIVER_DEBUG_PRETTY") == "1"
}

// Session is the trace of one parse or render. A session must not be shared
// between concurrent renders.
type Session struct {
	sessionID string
	sink      Sink
	startTime time.Time
}

// NewSession creates a session writing to sink.
// It returns nil if tracing is disabled or sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		sessionID: generateSessionID(),
		sink:      sink,
		startTime: time.Now(),
	}
	s.Emit("session", "Start", map[string]interface{}{
		"version": "1.0",
	})
	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.sessionID
}

// Emit sends an event to the sink. It is a no-op on a nil session.
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}

	//nolint:errcheck // trace failures must not break rendering
	s.sink.Write(Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.sessionID,
		Phase:     phase,
		Event:     event,
		Data:      data,
	})
}

// Close emits the session end event and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": time.Since(s.startTime).Milliseconds(),
	})
	return s.sink.Close()
}

// generateSessionID returns 8 hex characters.
func generateSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		n := time.Now().UnixNano()
		return hex.EncodeToString([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	}
	return hex.EncodeToString(b)
}

// Event is the envelope for every trace record.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
