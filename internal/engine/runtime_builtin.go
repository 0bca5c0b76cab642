package engine

import (
	"context"
	"errors"
	"math"
	"strings"

	"gend/pkg/types"
)

// builtinRuntime is a deterministic, hardware-free model backend. Greedy
// decoding (temperature 0) is a pure function of the prompt tokens, which is
// what makes the call-shape equivalence contract testable; temperature > 0
// additionally mixes the sampling parameters and seed into the token stream.
type builtinRuntime struct {
	model  types.Model
	loaded bool
}

// NewBuiltinRuntime returns the built-in deterministic runtime.
func NewBuiltinRuntime() Runtime { return &builtinRuntime{} }

func (r *builtinRuntime) Load(mdl types.Model) error {
	r.model = mdl
	r.loaded = true
	return nil
}

func (r *builtinRuntime) Encode(text string) ([]int, error) {
	if !r.loaded {
		return nil, errors.New("builtin runtime: model not loaded")
	}
	return encodeWords(text), nil
}

func (r *builtinRuntime) Decode(ctx context.Context, promptIDs []int, params types.SamplingParams, budget int) (types.CompletionOutput, error) {
	if !r.loaded {
		return types.CompletionOutput{}, errors.New("builtin runtime: model not loaded")
	}
	h := uint64(1469598103934665603)
	for _, id := range promptIDs {
		h = mixToken(h, id)
	}
	if params.Temperature > 0 {
		// Stochastic decoding: fold the sampling knobs into the stream so
		// different configurations produce different continuations.
		h = mixToken(h, int(math.Float64bits(params.Temperature)>>32))
		h = mixToken(h, int(math.Float64bits(params.TopP)>>32))
		h = mixToken(h, params.TopK)
		h = mixToken(h, int(params.Seed))
	}

	out := types.CompletionOutput{FinishReason: types.FinishLength}
	var text strings.Builder
	for step := 0; step < budget; step++ {
		select {
		case <-ctx.Done():
			return types.CompletionOutput{}, ctx.Err()
		default:
		}
		tok := int(h % uint64(vocabSize))
		// Emit EOS occasionally, but never as the first token.
		if step > 0 && !params.IgnoreEOS && tok%61 == eosToken {
			out.FinishReason = types.FinishStop
			break
		}
		out.TokenIDs = append(out.TokenIDs, tok)
		if text.Len() > 0 {
			text.WriteByte(' ')
		}
		text.WriteString(tokenText(tok))
		if stopHit(text.String(), params.Stop) {
			out.FinishReason = types.FinishStop
			break
		}
		h = mixToken(h, tok)
	}
	out.Text = text.String()
	return out, nil
}

func (r *builtinRuntime) Unload() error {
	r.loaded = false
	return nil
}

// stopHit reports whether the rendered text ends with any stop sequence.
func stopHit(text string, stops []string) bool {
	for _, s := range stops {
		if s != "" && strings.HasSuffix(text, s) {
			return true
		}
	}
	return false
}
