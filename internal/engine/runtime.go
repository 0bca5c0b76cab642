package engine

import (
	"context"

	"gend/pkg/types"
)

// Runtime abstracts the model execution backend behind the handle. Concrete
// implementations (built-in deterministic model, llama.cpp) satisfy this
// interface; the handle owns lifecycle and budget enforcement around it.
type Runtime interface {
	// Load prepares the backend for the given model. Called once per handle.
	Load(mdl types.Model) error
	// Encode maps prompt text to token ids.
	Encode(text string) ([]int, error)
	// Decode generates one completion for the prompt. budget is the maximum
	// number of new tokens the backend may emit; implementations must return
	// when the context is canceled.
	Decode(ctx context.Context, promptIDs []int, params types.SamplingParams, budget int) (types.CompletionOutput, error)
	// Unload releases backend resources. Idempotent.
	Unload() error
}
