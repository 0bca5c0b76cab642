package client

import (
	"context"
	"encoding/json"

	"gend/internal/engine"
	"gend/pkg/types"
)

// Service adapts a Session for the HTTP layer: it parses wire-shaped
// requests, runs the session and surfaces diagnostics as response warnings.
type Service struct {
	session *Session
	handle  *engine.Handle
	models  []types.Model
	sink    DiagnosticSink
}

// NewService builds the HTTP-facing service around an engine handle.
func NewService(h *engine.Handle, models []types.Model, sink DiagnosticSink) *Service {
	if sink == nil {
		sink = noopSink{}
	}
	return &Service{
		session: NewSession(h),
		handle:  h,
		models:  models,
		sink:    sink,
	}
}

// Generate serves one wire-level generate call.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	call, err := callFromWire(req)
	if err != nil {
		return types.GenerateResponse{}, err
	}
	// Collect this call's diagnostics for the response while still feeding
	// the process-wide sink.
	mem := NewMemorySink()
	sess := NewSession(s.session.gen, WithDiagnostics(fanoutSink{mem, s.sink}))
	results, err := sess.Generate(ctx, call)
	if err != nil {
		return types.GenerateResponse{}, err
	}
	resp := types.GenerateResponse{Results: results}
	for _, d := range mem.Diagnostics() {
		resp.Warnings = append(resp.Warnings, types.Warning{Field: d.Field, Message: d.Message})
	}
	return resp, nil
}

// ListModels returns the registry view.
func (s *Service) ListModels() []types.Model {
	out := make([]types.Model, len(s.models))
	copy(out, s.models)
	return out
}

// Status reports the engine status.
func (s *Service) Status() types.StatusResponse { return s.handle.Status() }

// Ready reports whether the engine can serve requests.
func (s *Service) Ready() bool { return s.handle.Ready() }

// fanoutSink publishes to every wrapped sink.
type fanoutSink []DiagnosticSink

func (f fanoutSink) Publish(d Diagnostic) {
	for _, s := range f {
		s.Publish(d)
	}
}

// callFromWire converts the JSON payload into a Call. The deprecated
// prompt_token_ids field accepts both a flat id list (one prompt) and a list
// of id lists (one prompt per element).
func callFromWire(req types.GenerateRequest) (Call, error) {
	call := Call{
		Prompt:       req.Prompt,
		Sampling:     req.Sampling,
		SamplingEach: req.SamplingEach,
	}
	for i, spec := range req.Prompts {
		p, err := promptFromSpec(i, spec)
		if err != nil {
			return Call{}, err
		}
		call.Prompts = append(call.Prompts, p)
	}
	if len(req.PromptTokenIDs) > 0 {
		ids, err := parseTokenIDs(req.PromptTokenIDs)
		if err != nil {
			return Call{}, err
		}
		call.PromptTokenIDs = ids
	}
	return call, nil
}

// promptFromSpec enforces the exactly-one-variant rule on the wire form.
func promptFromSpec(i int, spec types.PromptSpec) (types.Prompt, error) {
	switch {
	case spec.Text != nil && spec.TokenIDs != nil:
		return nil, ErrMalformedRequest("prompt %d: both text and token_ids set", i)
	case spec.Text != nil:
		return types.TextPrompt(*spec.Text), nil
	case spec.TokenIDs != nil:
		return types.TokensPrompt(spec.TokenIDs), nil
	default:
		return nil, ErrMalformedRequest("prompt %d: neither text nor token_ids set", i)
	}
}

// parseTokenIDs decodes the legacy field: []int or [][]int.
func parseTokenIDs(raw json.RawMessage) ([][]int, error) {
	var nested [][]int
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested, nil
	}
	var flat []int
	if err := json.Unmarshal(raw, &flat); err == nil {
		return [][]int{flat}, nil
	}
	return nil, ErrMalformedRequest("prompt_token_ids must be a list of ids or a list of id lists")
}
