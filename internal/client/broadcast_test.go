package client

import (
	"testing"

	"gend/pkg/types"
)

func TestResolveSamplingDefault(t *testing.T) {
	out, err := resolveSampling(3, nil, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 configs, got %d", len(out))
	}
	def := types.DefaultSamplingParams()
	for i, p := range out {
		if !p.Equal(def) {
			t.Fatalf("config %d is not the default: %+v", i, p)
		}
	}
}

func TestResolveSamplingBroadcastSingle(t *testing.T) {
	single := types.SamplingParams{Temperature: 0.3, TopP: 0.95, MaxTokens: 8}
	for _, n := range []int{1, 2, 4, 7} {
		out, err := resolveSampling(n, &single, nil)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(out) != n {
			t.Fatalf("n=%d: got %d configs", n, len(out))
		}
		for i, p := range out {
			if !p.Equal(single) {
				t.Fatalf("n=%d config %d differs from broadcast source: %+v", n, i, p)
			}
		}
	}
}

func TestResolveSamplingExactMatch(t *testing.T) {
	each := []types.SamplingParams{
		{Temperature: 0.01, TopP: 0.95, MaxTokens: 4},
		{Temperature: 0.3, TopP: 0.95, MaxTokens: 4},
		{Temperature: 0.7, TopP: 0.95, MaxTokens: 4},
		{Temperature: 0.99, TopP: 0.95, MaxTokens: 4},
	}
	out, err := resolveSampling(4, nil, each)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d configs", len(out))
	}
	for i := range each {
		if !out[i].Equal(each[i]) {
			t.Fatalf("config %d reordered or changed: %+v vs %+v", i, out[i], each[i])
		}
	}
}

func TestResolveSamplingCountMismatch(t *testing.T) {
	each := []types.SamplingParams{
		{Temperature: 0.1, TopP: 0.95},
		{Temperature: 0.2, TopP: 0.95},
		{Temperature: 0.3, TopP: 0.95},
	}
	_, err := resolveSampling(4, nil, each)
	if err == nil {
		t.Fatalf("expected error for 4 prompts with 3 configs")
	}
	if !IsValidation(err) || !IsCountMismatch(err) {
		t.Fatalf("expected count-mismatch validation error, got %v", err)
	}
}

func TestResolveSamplingBothShapesRejected(t *testing.T) {
	single := types.DefaultSamplingParams()
	each := []types.SamplingParams{types.DefaultSamplingParams()}
	_, err := resolveSampling(1, &single, each)
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected malformed-request error, got %v", err)
	}
	if IsCountMismatch(err) {
		t.Fatalf("expected malformed-request, not count-mismatch: %v", err)
	}
}

func TestResolveSamplingInvalidParams(t *testing.T) {
	bad := types.SamplingParams{Temperature: -1, TopP: 1}
	if _, err := resolveSampling(2, &bad, nil); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error for negative temperature, got %v", err)
	}
	badEach := []types.SamplingParams{{Temperature: 0, TopP: 0}}
	if _, err := resolveSampling(1, nil, badEach); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error for top_p=0, got %v", err)
	}
}
