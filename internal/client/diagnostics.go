package client

import (
	"sync"

	"github.com/rs/zerolog"
)

// Diagnostic is a non-fatal notification emitted alongside the normal return
// path, e.g. use of a deprecated request field. It never aborts execution.
type Diagnostic struct {
	// Field that triggered the diagnostic (e.g. "prompt_token_ids").
	Field string
	// Human-readable message.
	Message string
}

// DiagnosticSink receives diagnostics from the request layer. Implementations
// should be lightweight and non-blocking; Publish must not panic.
type DiagnosticSink interface {
	Publish(Diagnostic)
}

// noopSink is the default; it drops diagnostics.
type noopSink struct{}

func (noopSink) Publish(Diagnostic) {}

// MemorySink stores diagnostics in-memory for tests and for surfacing them
// as response warnings.
type MemorySink struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Publish(d Diagnostic) {
	s.mu.Lock()
	s.diags = append(s.diags, d)
	s.mu.Unlock()
}

func (s *MemorySink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// LogSink forwards diagnostics to a structured logger at warn level.
type LogSink struct{ Log zerolog.Logger }

func (s LogSink) Publish(d Diagnostic) {
	s.Log.Warn().Str("field", d.Field).Msg(d.Message)
}
