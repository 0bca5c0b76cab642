package client

import (
	"strings"
	"testing"

	"gend/pkg/types"
)

func TestNormalizeCanonicalPassthrough(t *testing.T) {
	call := Call{Prompts: []types.Prompt{
		types.TextPrompt("Hello, my name is"),
		types.TokensPrompt{0, 2, 1},
	}}
	prompts, diags, err := normalize(call)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if len(diags) != 0 {
		t.Fatalf("canonical shape must not emit diagnostics, got %v", diags)
	}
}

func TestNormalizeLegacyTextPrompt(t *testing.T) {
	prompts, diags, err := normalize(Call{Prompt: "The capital of France is"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(prompts))
	}
	if _, ok := prompts[0].(types.TextPrompt); !ok {
		t.Fatalf("expected TextPrompt, got %T", prompts[0])
	}
	if len(diags) != 1 || diags[0].Field != "prompt" {
		t.Fatalf("expected deprecation diagnostic for 'prompt', got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "deprecated") {
		t.Fatalf("diagnostic message should mention deprecation: %q", diags[0].Message)
	}
}

func TestNormalizeLegacyTokenIDs(t *testing.T) {
	call := Call{PromptTokenIDs: [][]int{{0}, {0, 1}, {0, 2, 1}}}
	prompts, diags, err := normalize(call)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(prompts) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(prompts))
	}
	for i, p := range prompts {
		if _, ok := p.(types.TokensPrompt); !ok {
			t.Fatalf("prompt %d: expected TokensPrompt, got %T", i, p)
		}
	}
	if len(diags) != 1 || diags[0].Field != "prompt_token_ids" {
		t.Fatalf("expected deprecation diagnostic for 'prompt_token_ids', got %v", diags)
	}
}

func TestNormalizeRejectsMixedShapes(t *testing.T) {
	cases := []Call{
		{Prompts: []types.Prompt{types.TextPrompt("a")}, Prompt: "b"},
		{Prompts: []types.Prompt{types.TextPrompt("a")}, PromptTokenIDs: [][]int{{1}}},
		{Prompt: "a", PromptTokenIDs: [][]int{{1}}},
	}
	for i, call := range cases {
		if _, _, err := normalize(call); err == nil || !IsValidation(err) {
			t.Fatalf("case %d: expected malformed-request error, got %v", i, err)
		}
	}
}

func TestNormalizeRejectsEmptyInput(t *testing.T) {
	if _, _, err := normalize(Call{}); err == nil || !IsValidation(err) {
		t.Fatalf("expected malformed-request for empty call, got %v", err)
	}
}

func TestNormalizeRejectsBadPrompts(t *testing.T) {
	cases := []Call{
		{Prompts: []types.Prompt{types.TextPrompt("  ")}},
		{Prompts: []types.Prompt{types.TokensPrompt{}}},
		{Prompts: []types.Prompt{types.TokensPrompt{0, -3}}},
		{PromptTokenIDs: [][]int{{1}, {-1}}},
	}
	for i, call := range cases {
		if _, _, err := normalize(call); err == nil || !IsValidation(err) {
			t.Fatalf("case %d: expected malformed-request error, got %v", i, err)
		}
	}
}
