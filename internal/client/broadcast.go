package client

import "gend/pkg/types"

// resolveSampling fans a sampling argument out to exactly n configurations.
// Broadcast rules mirror array broadcasting: absent expands to n defaults, a
// single configuration expands to n copies, and a per-request list must match
// n exactly. No truncation, no padding. Pure function.
func resolveSampling(n int, single *types.SamplingParams, each []types.SamplingParams) ([]types.SamplingParams, error) {
	if single != nil && len(each) > 0 {
		return nil, ErrMalformedRequest("both a single sampling configuration and a per-request list were supplied")
	}
	if len(each) > 0 {
		if len(each) != n {
			return nil, ErrSamplingCountMismatch(n, len(each))
		}
		for i, p := range each {
			if err := p.Validate(); err != nil {
				return nil, ErrMalformedRequest("sampling configuration %d: %v", i, err)
			}
		}
		out := make([]types.SamplingParams, n)
		copy(out, each)
		return out, nil
	}

	base := types.DefaultSamplingParams()
	if single != nil {
		if err := single.Validate(); err != nil {
			return nil, ErrMalformedRequest("sampling configuration: %v", err)
		}
		base = *single
	}
	out := make([]types.SamplingParams, n)
	for i := range out {
		out[i] = base
	}
	return out, nil
}
