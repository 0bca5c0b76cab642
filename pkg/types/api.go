package types

import "encoding/json"

// PromptSpec is the wire form of a prompt. Exactly one of Text or TokenIDs
// must be set.
type PromptSpec struct {
	// Raw text prompt.
	// example: Hello, my name is
	Text *string `json:"text,omitempty" example:"Hello, my name is"`
	// Pre-tokenized prompt ids.
	TokenIDs []int `json:"token_ids,omitempty"`
}

// GenerateRequest is the JSON payload accepted by POST /generate.
// Canonical requests use Prompts; the legacy fields Prompt and
// PromptTokenIDs remain accepted during the migration window and produce a
// deprecation warning in the response.
type GenerateRequest struct {
	// Canonical prompt list.
	Prompts []PromptSpec `json:"prompts,omitempty"`
	// Deprecated: single text prompt. Use Prompts instead.
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt,omitempty" example:"Write a haiku about the ocean."`
	// Deprecated: token-id prompt(s); either a flat id list (one prompt) or a
	// list of id lists (one prompt per element). Use Prompts instead.
	PromptTokenIDs json.RawMessage `json:"prompt_token_ids,omitempty"`
	// Single sampling configuration applied to every prompt.
	Sampling *SamplingParams `json:"sampling,omitempty"`
	// Per-prompt sampling configurations; length must equal the prompt count.
	SamplingEach []SamplingParams `json:"sampling_each,omitempty"`
}

// Warning surfaces a non-fatal diagnostic alongside results.
type Warning struct {
	// Field that triggered the warning.
	// example: prompt_token_ids
	Field string `json:"field" example:"prompt_token_ids"`
	// Human-readable message.
	Message string `json:"message"`
}

// GenerateResponse wraps the results of one generate call.
type GenerateResponse struct {
	Results []RequestOutput `json:"results"`
	// Deprecation and other non-fatal diagnostics, if any.
	Warnings []Warning `json:"warnings,omitempty"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse summarizes the engine for GET /status.
type StatusResponse struct {
	// Engine lifecycle state: uninitialized, ready or torndown.
	// example: ready
	State string `json:"state" example:"ready"`
	// Identifier of the loaded model.
	// example: builtin-tiny
	Model string `json:"model,omitempty" example:"builtin-tiny"`
	// Effective maximum sequence length (prompt + generated tokens).
	// example: 2048
	MaxModelLen int `json:"max_model_len,omitempty" example:"2048"`
	// Reserved fraction of device memory, in (0,1].
	// example: 0.9
	GPUMemoryUtilization float64 `json:"gpu_memory_utilization,omitempty" example:"0.9"`
	// Size of the tensor-parallel process group.
	// example: 1
	TensorParallelSize int `json:"tensor_parallel_size,omitempty" example:"1"`
	// Requests served since initialization.
	// example: 12
	Requests int64 `json:"requests" example:"12"`
	// Tokens generated since initialization.
	// example: 480
	GeneratedTokens int64 `json:"generated_tokens" example:"480"`
	// Last engine error observed, if any.
	Error string `json:"error,omitempty"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
}
