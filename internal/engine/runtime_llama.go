//go:build llama

package engine

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"gend/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaRuntime backs the engine with an in-process llama.cpp model. The
// binding is text-level, so token ids reported by this runtime are the
// engine's own stable word hashes, not llama's internal ids.
type llamaRuntime struct {
	ctxSize int
	threads int
	model   *llama.LLama
}

// NewLlamaRuntime returns a llama.cpp-backed runtime. Decode calls are
// serialized: the binding stores the token callback on the model object and
// the llama context is not reentrant, so the handle's worker group must not
// overlap calls on it.
func NewLlamaRuntime(ctxSize, threads int) Runtime {
	return newSerialRuntime(&llamaRuntime{ctxSize: ctxSize, threads: threads})
}

func (r *llamaRuntime) Load(mdl types.Model) error {
	if strings.TrimSpace(mdl.Path) == "" {
		return errors.New("llama runtime: model path is empty")
	}
	m, err := llama.New(mdl.Path, llama.SetContext(r.ctxSize))
	if err != nil {
		return err
	}
	r.model = m
	return nil
}

func (r *llamaRuntime) Encode(text string) ([]int, error) {
	if r.model == nil {
		return nil, errors.New("llama runtime: model not loaded")
	}
	return encodeWords(text), nil
}

func (r *llamaRuntime) Decode(ctx context.Context, promptIDs []int, params types.SamplingParams, budget int) (types.CompletionOutput, error) {
	if r.model == nil {
		return types.CompletionOutput{}, errors.New("llama runtime: model not loaded")
	}
	if budget <= 0 {
		return types.CompletionOutput{FinishReason: types.FinishLength}, nil
	}
	// Reconstruct a text prompt from the hashed ids; token-id prompts
	// round-trip through the same word table used by Encode.
	var prompt strings.Builder
	for i, id := range promptIDs {
		if i > 0 {
			prompt.WriteByte(' ')
		}
		prompt.WriteString(tokenText(id))
	}

	out := types.CompletionOutput{}
	emitted := 0
	r.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if emitted >= budget {
			return false
		}
		emitted++
		out.TokenIDs = append(out.TokenIDs, int(hashWord(tok)%uint64(vocabSize)))
		return true
	})

	po := []llama.PredictOption{
		llama.SetTokens(budget),
		llama.SetThreads(maxInt(1, r.threads)),
		llama.SetTopP(float32(params.TopP)),
		llama.SetTemperature(float32(params.Temperature)),
	}
	if params.TopK > 0 {
		po = append(po, llama.SetTopK(params.TopK))
	}
	if params.Seed != 0 {
		po = append(po, llama.SetSeed(int(params.Seed)))
	}
	if len(params.Stop) > 0 {
		po = append(po, llama.SetStopWords(params.Stop...))
	}
	text, err := r.model.Predict(prompt.String(), po...)
	if err != nil {
		if ctx.Err() != nil {
			return types.CompletionOutput{}, ctx.Err()
		}
		return types.CompletionOutput{}, err
	}
	out.Text = text
	if emitted >= budget {
		out.FinishReason = types.FinishLength
	} else {
		out.FinishReason = types.FinishStop
	}
	return out, nil
}

func (r *llamaRuntime) Unload() error {
	if r.model != nil {
		r.model.Free()
		r.model = nil
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
