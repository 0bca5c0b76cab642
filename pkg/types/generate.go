package types

// Prompt is input to generation: either raw text or pre-tokenized ids.
// The two variants are the only implementations; exactly one is used per
// request.
type Prompt interface {
	promptVariant()
}

// TextPrompt is a raw text prompt to be tokenized by the engine.
type TextPrompt string

func (TextPrompt) promptVariant() {}

// TokensPrompt is a pre-tokenized prompt. All ids must be >= 0.
type TokensPrompt []int

func (TokensPrompt) promptVariant() {}

// GenerationRequest pairs one prompt with its resolved sampling parameters.
// Instances are produced by the request layer; downstream code never sees a
// partially filled request.
type GenerationRequest struct {
	Prompt   Prompt
	Sampling SamplingParams
}

// Finish reasons reported per completion.
const (
	FinishLength = "length"
	FinishStop   = "stop"
)

// CompletionOutput is one generated continuation of a prompt.
type CompletionOutput struct {
	// Generated token ids, in emission order.
	TokenIDs []int `json:"token_ids"`
	// Rendered text for the generated tokens.
	Text string `json:"text"`
	// Why generation ended: "length" or "stop".
	// example: length
	FinishReason string `json:"finish_reason" example:"length"`
}

// RequestOutput is the result for one generation request.
type RequestOutput struct {
	// Token ids of the prompt after tokenization (or as submitted).
	PromptTokenIDs []int `json:"prompt_token_ids"`
	// Completions for this prompt, in emission order.
	Outputs []CompletionOutput `json:"outputs"`
}
