package client

import (
	"context"
	"reflect"
	"testing"

	"gend/internal/engine"
	"gend/pkg/types"
)

var testPrompts = []string{
	"Hello, my name is",
	"The president of the United States is",
	"The capital of France is",
	"The future of AI is",
}

var testTokenIDs = [][]int{
	{0},
	{0, 1},
	{0, 2, 1},
	{0, 3, 1, 2},
}

// newTestEngine constructs a Ready handle backed by the built-in runtime and
// tears it down when the test ends.
func newTestEngine(t *testing.T, cfg engine.Config) *engine.Handle {
	t.Helper()
	if cfg.Model == "" {
		cfg.Model = "builtin-tiny"
	}
	if cfg.GPUMemoryUtilization == 0 {
		cfg.GPUMemoryUtilization = 0.10
	}
	h, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(h.Teardown)
	return h
}

func greedy() *types.SamplingParams {
	return &types.SamplingParams{Temperature: 0, TopP: 1.0}
}

func TestLegacyCanonicalConsistencySinglePromptTokens(t *testing.T) {
	h := newTestEngine(t, engine.Config{MaxNumBatchedTokens: 4096})
	for _, ids := range testTokenIDs {
		sink := NewMemorySink()
		legacy := NewSession(h, WithDiagnostics(sink))
		legacyOut, err := legacy.Generate(context.Background(), Call{
			PromptTokenIDs: [][]int{ids},
			Sampling:       greedy(),
		})
		if err != nil {
			t.Fatalf("legacy generate: %v", err)
		}
		diags := sink.Diagnostics()
		if len(diags) != 1 || diags[0].Field != "prompt_token_ids" {
			t.Fatalf("expected 'prompt_token_ids' deprecation diagnostic, got %v", diags)
		}

		canonical := NewSession(h)
		canonicalOut, err := canonical.Generate(context.Background(), Call{
			Prompts:  []types.Prompt{types.TokensPrompt(ids)},
			Sampling: greedy(),
		})
		if err != nil {
			t.Fatalf("canonical generate: %v", err)
		}
		if !reflect.DeepEqual(legacyOut, canonicalOut) {
			t.Fatalf("call shapes disagree for prompt %v:\nlegacy:    %+v\ncanonical: %+v", ids, legacyOut, canonicalOut)
		}
	}
}

func TestLegacyCanonicalConsistencyMultiPromptTokens(t *testing.T) {
	h := newTestEngine(t, engine.Config{MaxNumBatchedTokens: 4096})
	sink := NewMemorySink()
	legacy := NewSession(h, WithDiagnostics(sink))
	legacyOut, err := legacy.Generate(context.Background(), Call{
		PromptTokenIDs: testTokenIDs,
		Sampling:       greedy(),
	})
	if err != nil {
		t.Fatalf("legacy generate: %v", err)
	}
	if len(sink.Diagnostics()) != 1 {
		t.Fatalf("expected one deprecation diagnostic, got %v", sink.Diagnostics())
	}

	prompts := make([]types.Prompt, len(testTokenIDs))
	for i, ids := range testTokenIDs {
		prompts[i] = types.TokensPrompt(ids)
	}
	canonicalOut, err := NewSession(h).Generate(context.Background(), Call{
		Prompts:  prompts,
		Sampling: greedy(),
	})
	if err != nil {
		t.Fatalf("canonical generate: %v", err)
	}
	if !reflect.DeepEqual(legacyOut, canonicalOut) {
		t.Fatalf("call shapes disagree:\nlegacy:    %+v\ncanonical: %+v", legacyOut, canonicalOut)
	}
}

func TestLegacyCanonicalConsistencyTextPrompt(t *testing.T) {
	h := newTestEngine(t, engine.Config{})
	sink := NewMemorySink()
	legacyOut, err := NewSession(h, WithDiagnostics(sink)).Generate(context.Background(), Call{
		Prompt:   testPrompts[0],
		Sampling: greedy(),
	})
	if err != nil {
		t.Fatalf("legacy generate: %v", err)
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Field != "prompt" {
		t.Fatalf("expected 'prompt' deprecation diagnostic, got %v", diags)
	}
	canonicalOut, err := NewSession(h).Generate(context.Background(), Call{
		Prompts:  []types.Prompt{types.TextPrompt(testPrompts[0])},
		Sampling: greedy(),
	})
	if err != nil {
		t.Fatalf("canonical generate: %v", err)
	}
	if !reflect.DeepEqual(legacyOut, canonicalOut) {
		t.Fatalf("call shapes disagree:\nlegacy:    %+v\ncanonical: %+v", legacyOut, canonicalOut)
	}
}

func TestMultipleSamplingParams(t *testing.T) {
	h := newTestEngine(t, engine.Config{})
	s := NewSession(h)
	prompts := make([]types.Prompt, len(testPrompts))
	for i, p := range testPrompts {
		prompts[i] = types.TextPrompt(p)
	}
	each := []types.SamplingParams{
		{Temperature: 0.01, TopP: 0.95, MaxTokens: 8},
		{Temperature: 0.3, TopP: 0.95, MaxTokens: 8},
		{Temperature: 0.7, TopP: 0.95, MaxTokens: 8},
		{Temperature: 0.99, TopP: 0.95, MaxTokens: 8},
	}

	// Multiple configurations are matched with each prompt.
	outputs, err := s.Generate(context.Background(), Call{Prompts: prompts, SamplingEach: each})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(outputs) != len(prompts) {
		t.Fatalf("expected %d outputs, got %d", len(prompts), len(outputs))
	}

	// A short list fails before reaching the engine.
	_, err = s.Generate(context.Background(), Call{Prompts: prompts, SamplingEach: each[:3]})
	if err == nil || !IsCountMismatch(err) {
		t.Fatalf("expected count-mismatch, got %v", err)
	}

	// A single configuration is applied to every prompt.
	single := types.SamplingParams{Temperature: 0.3, TopP: 0.95, MaxTokens: 8}
	outputs, err = s.Generate(context.Background(), Call{Prompts: prompts, Sampling: &single})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(outputs) != len(prompts) {
		t.Fatalf("expected %d outputs, got %d", len(prompts), len(outputs))
	}

	// No sampling argument applies the default configuration.
	outputs, err = s.Generate(context.Background(), Call{Prompts: prompts})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(outputs) != len(prompts) {
		t.Fatalf("expected %d outputs, got %d", len(prompts), len(outputs))
	}
}

func TestGenerateConcreteScenario(t *testing.T) {
	h := newTestEngine(t, engine.Config{MaxModelLen: 64})
	outputs, err := NewSession(h).Generate(context.Background(), Call{
		Prompts: []types.Prompt{
			types.TextPrompt("Hello, my name is"),
			types.TextPrompt("The capital of France is"),
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(outputs))
	}
	for i, out := range outputs {
		if len(out.Outputs) == 0 || len(out.Outputs[0].TokenIDs) == 0 {
			t.Fatalf("result %d: empty completion", i)
		}
		if got := len(out.PromptTokenIDs) + len(out.Outputs[0].TokenIDs); got > 64 {
			t.Fatalf("result %d: %d tokens exceeds max model len 64", i, got)
		}
	}
}

// fixedGenerator returns a canned result list regardless of input.
type fixedGenerator struct{ outs []types.RequestOutput }

func (g fixedGenerator) Generate(ctx context.Context, reqs []types.GenerationRequest) ([]types.RequestOutput, error) {
	return g.outs, nil
}

func TestSessionDetectsEngineCountMismatch(t *testing.T) {
	s := NewSession(fixedGenerator{outs: []types.RequestOutput{{}}})
	_, err := s.Generate(context.Background(), Call{Prompts: []types.Prompt{
		types.TextPrompt("a"), types.TextPrompt("b"),
	}})
	if err == nil || !engine.IsCountMismatch(err) {
		t.Fatalf("expected engine count-mismatch, got %v", err)
	}
}

func TestSessionValidatesBeforeEngineCall(t *testing.T) {
	calls := 0
	s := NewSession(countingGenerator{&calls})
	_, err := s.Generate(context.Background(), Call{
		Prompts:      []types.Prompt{types.TextPrompt("a")},
		SamplingEach: []types.SamplingParams{{TopP: 1}, {TopP: 1}},
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("engine was called %d times for invalid input", calls)
	}
}

type countingGenerator struct{ calls *int }

func (g countingGenerator) Generate(ctx context.Context, reqs []types.GenerationRequest) ([]types.RequestOutput, error) {
	*g.calls++
	return make([]types.RequestOutput, len(reqs)), nil
}
