package types

import "fmt"

// Defaults applied by DefaultSamplingParams.
const (
	DefaultTemperature = 1.0
	DefaultTopP        = 1.0
	DefaultMaxTokens   = 16
)

// SamplingParams controls how tokens are chosen during generation.
// Values are plain data; construct once and treat as read-only.
type SamplingParams struct {
	// Sampling temperature; 0 selects greedy decoding.
	// example: 0.7
	Temperature float64 `json:"temperature" example:"0.7"`
	// Nucleus sampling probability, in (0,1].
	// example: 0.95
	TopP float64 `json:"top_p" example:"0.95"`
	// Top-K sampling: limit candidates to top K tokens (0 = disabled).
	// example: 40
	TopK int `json:"top_k,omitempty" example:"40"`
	// Maximum number of new tokens to generate. 0 means the package default.
	// example: 64
	MaxTokens int `json:"max_tokens,omitempty" example:"64"`
	// Random seed used when temperature > 0; 0 lets the engine choose.
	// example: 42
	Seed int64 `json:"seed,omitempty" example:"42"`
	// Optional stop sequences. Generation stops when any sequence is matched.
	Stop []string `json:"stop,omitempty"`
	// If true, the end-of-sequence token does not stop generation.
	IgnoreEOS bool `json:"ignore_eos,omitempty"`
}

// DefaultSamplingParams returns the process-default configuration.
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Validate reports whether the parameters are usable.
func (p SamplingParams) Validate() error {
	if p.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0, got %g", p.Temperature)
	}
	if p.TopP <= 0 || p.TopP > 1 {
		return fmt.Errorf("top_p must be in (0, 1], got %g", p.TopP)
	}
	if p.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0, got %d", p.MaxTokens)
	}
	return nil
}

// Equal reports field-for-field equality.
func (p SamplingParams) Equal(o SamplingParams) bool {
	if p.Temperature != o.Temperature || p.TopP != o.TopP || p.TopK != o.TopK ||
		p.MaxTokens != o.MaxTokens || p.Seed != o.Seed || p.IgnoreEOS != o.IgnoreEOS {
		return false
	}
	if len(p.Stop) != len(o.Stop) {
		return false
	}
	for i := range p.Stop {
		if p.Stop[i] != o.Stop[i] {
			return false
		}
	}
	return true
}
