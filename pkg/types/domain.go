package types

// Model represents a discoverable or loadable generation model.
type Model struct {
	// Stable identifier for the model.
	// example: builtin-tiny
	ID string `json:"id" example:"builtin-tiny"`
	// Human-friendly name.
	// example: Builtin Tiny (deterministic)
	Name string `json:"name" example:"Builtin Tiny (deterministic)"`
	// Absolute path to the model file on disk; empty for built-in models.
	// example: /home/user/models/TinyLlama.Q4_K_M.gguf
	Path string `json:"path,omitempty" example:"/home/user/models/TinyLlama.Q4_K_M.gguf"`
	// Quantization level or variant string.
	// example: Q4_K_M
	Quant string `json:"quant,omitempty" example:"Q4_K_M"`
	// Optional family (e.g., llama, mistral, phi).
	// example: llama
	Family string `json:"family,omitempty" example:"llama"`
}
