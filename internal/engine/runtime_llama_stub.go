//go:build !llama

package engine

// This file provides a no-CGO stub for the llama runtime. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real runtime lives in runtime_llama.go (tagged 'llama').

import (
	"context"
	"errors"

	"gend/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

var errLlamaNotBuilt = errors.New("llama support not built (missing 'llama' build tag)")

type llamaRuntime struct{}

// NewLlamaRuntime returns a runtime that refuses to load without the 'llama'
// build tag. This avoids any mocked behavior in binaries built without CGO.
func NewLlamaRuntime(ctxSize, threads int) Runtime { return &llamaRuntime{} }

func (r *llamaRuntime) Load(mdl types.Model) error { return errLlamaNotBuilt }

func (r *llamaRuntime) Encode(text string) ([]int, error) { return nil, errLlamaNotBuilt }

func (r *llamaRuntime) Decode(ctx context.Context, promptIDs []int, params types.SamplingParams, budget int) (types.CompletionOutput, error) {
	return types.CompletionOutput{}, errLlamaNotBuilt
}

func (r *llamaRuntime) Unload() error { return nil }
