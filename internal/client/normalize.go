package client

import (
	"strings"

	"gend/pkg/types"
)

// Legacy field names reported in deprecation diagnostics.
const (
	legacyFieldPrompt   = "prompt"
	legacyFieldTokenIDs = "prompt_token_ids"
)

// Call is the input to one generation session. Either the canonical Prompts
// field or exactly one of the legacy fields is set; mixing shapes is a
// malformed request.
type Call struct {
	// Canonical prompt list.
	Prompts []types.Prompt

	// Deprecated: single text prompt. Use Prompts with a TextPrompt instead.
	Prompt string
	// Deprecated: token-id prompts, one per element. Use Prompts with
	// TokensPrompt values instead.
	PromptTokenIDs [][]int

	// Single sampling configuration broadcast to every prompt.
	Sampling *types.SamplingParams
	// Per-prompt sampling configurations; length must equal the prompt count.
	SamplingEach []types.SamplingParams
}

// normalize converts a Call into canonical prompts. Legacy shapes are
// converted once at this boundary and reported through diagnostics; all
// downstream logic sees only canonical prompts.
func normalize(c Call) ([]types.Prompt, []Diagnostic, error) {
	canonical := len(c.Prompts) > 0
	legacyText := c.Prompt != ""
	legacyTokens := len(c.PromptTokenIDs) > 0

	switch {
	case canonical && (legacyText || legacyTokens):
		return nil, nil, ErrMalformedRequest("canonical prompts cannot be combined with deprecated prompt fields")
	case legacyText && legacyTokens:
		return nil, nil, ErrMalformedRequest("'prompt' and 'prompt_token_ids' are mutually exclusive")
	case !canonical && !legacyText && !legacyTokens:
		return nil, nil, ErrMalformedRequest("no prompts supplied")
	}

	if canonical {
		for i, p := range c.Prompts {
			if err := checkPrompt(i, p); err != nil {
				return nil, nil, err
			}
		}
		return c.Prompts, nil, nil
	}

	if legacyText {
		if strings.TrimSpace(c.Prompt) == "" {
			return nil, nil, ErrMalformedRequest("prompt 0: empty text")
		}
		diag := Diagnostic{
			Field:   legacyFieldPrompt,
			Message: "'prompt' is deprecated; use the structured prompts field",
		}
		return []types.Prompt{types.TextPrompt(c.Prompt)}, []Diagnostic{diag}, nil
	}

	prompts := make([]types.Prompt, 0, len(c.PromptTokenIDs))
	for i, ids := range c.PromptTokenIDs {
		p := types.TokensPrompt(ids)
		if err := checkPrompt(i, p); err != nil {
			return nil, nil, err
		}
		prompts = append(prompts, p)
	}
	diag := Diagnostic{
		Field:   legacyFieldTokenIDs,
		Message: "'prompt_token_ids' is deprecated; use the structured prompts field",
	}
	return prompts, []Diagnostic{diag}, nil
}

// checkPrompt validates one canonical prompt variant.
func checkPrompt(i int, p types.Prompt) error {
	switch v := p.(type) {
	case types.TextPrompt:
		if strings.TrimSpace(string(v)) == "" {
			return ErrMalformedRequest("prompt %d: empty text", i)
		}
	case types.TokensPrompt:
		if len(v) == 0 {
			return ErrMalformedRequest("prompt %d: empty token id list", i)
		}
		for _, id := range v {
			if id < 0 {
				return ErrMalformedRequest("prompt %d: negative token id %d", i, id)
			}
		}
	default:
		return ErrMalformedRequest("prompt %d: unknown variant %T", i, p)
	}
	return nil
}
