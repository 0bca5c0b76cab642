package client

import (
	"context"

	"gend/internal/engine"
	"gend/pkg/types"
)

// Generator is the data-plane seam to the engine collaborator: one batched
// call, one result per request in submission order.
type Generator interface {
	Generate(ctx context.Context, reqs []types.GenerationRequest) ([]types.RequestOutput, error)
}

// Session orchestrates one generate call: normalize the input shape, resolve
// the sampling fan-out, pair requests and submit the batch. It holds no
// request state and is safe for concurrent use.
type Session struct {
	gen  Generator
	sink DiagnosticSink
}

// SessionOption customizes Session construction.
type SessionOption func(*Session)

// WithDiagnostics installs a sink for deprecation diagnostics.
func WithDiagnostics(sink DiagnosticSink) SessionOption {
	return func(s *Session) { s.sink = sink }
}

// NewSession wires a session to an engine handle (or any Generator).
func NewSession(gen Generator, opts ...SessionOption) *Session {
	s := &Session{gen: gen, sink: noopSink{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs one call end to end. All input validation happens before the
// engine is invoked, so caller mistakes never consume engine capacity.
// Engine errors propagate unchanged; the only check added here is that the
// collaborator returned exactly one result per request.
func (s *Session) Generate(ctx context.Context, call Call) ([]types.RequestOutput, error) {
	prompts, diags, err := normalize(call)
	if err != nil {
		return nil, err
	}
	sampling, err := resolveSampling(len(prompts), call.Sampling, call.SamplingEach)
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		s.sink.Publish(d)
	}

	reqs := make([]types.GenerationRequest, len(prompts))
	for i := range prompts {
		reqs[i] = types.GenerationRequest{Prompt: prompts[i], Sampling: sampling[i]}
	}
	outs, err := s.gen.Generate(ctx, reqs)
	if err != nil {
		return nil, err
	}
	if len(outs) != len(reqs) {
		return nil, engine.ErrCountMismatch(len(reqs), len(outs))
	}
	return outs, nil
}
