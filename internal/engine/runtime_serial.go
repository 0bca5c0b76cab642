package engine

import (
	"context"
	"sync"

	"gend/pkg/types"
)

// serialRuntime wraps a backend whose model state is not reentrant. The
// llama.cpp binding keeps the token callback and decode context on the model
// object, so overlapping Decode calls would cross-attach tokens between
// requests; this wrapper admits one lifecycle or decode call at a time.
// Encode stays lock-free: it never touches model state.
type serialRuntime struct {
	mu sync.Mutex
	rt Runtime
}

func newSerialRuntime(rt Runtime) Runtime { return &serialRuntime{rt: rt} }

func (s *serialRuntime) Load(mdl types.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.Load(mdl)
}

func (s *serialRuntime) Encode(text string) ([]int, error) {
	return s.rt.Encode(text)
}

func (s *serialRuntime) Decode(ctx context.Context, promptIDs []int, params types.SamplingParams, budget int) (types.CompletionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.Decode(ctx, promptIDs, params, budget)
}

func (s *serialRuntime) Unload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.Unload()
}
