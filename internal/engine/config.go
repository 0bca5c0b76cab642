package engine

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxModelLen        = 2048
	defaultTensorParallelSize = 1
	defaultGPUUtilization     = 0.90
)

// Config encapsulates all tunables for Handle construction.
type Config struct {
	// Model identifier, resolved against the registry passed via WithRegistry
	// (or treated as a built-in model id when no registry is configured).
	Model string
	// Maximum sequence length (prompt + generated tokens). 0 means the
	// model-native limit.
	MaxModelLen int
	// Size of the tensor-parallel process group. 0 means 1.
	TensorParallelSize int
	// Fraction of device memory to reserve, in (0,1]. 0 means the default.
	GPUMemoryUtilization float64
	// Optional budget for prompt tokens scheduled per decode run. 0 disables
	// chunking.
	MaxNumBatchedTokens int
	// Disables graph-capture optimizations. Performance flag only; has no
	// effect on outputs.
	EnforceEager bool
}

// withDefaults returns cfg with zero values replaced by package defaults.
func (cfg Config) withDefaults() Config {
	if cfg.MaxModelLen <= 0 {
		cfg.MaxModelLen = defaultMaxModelLen
	}
	if cfg.TensorParallelSize <= 0 {
		cfg.TensorParallelSize = defaultTensorParallelSize
	}
	if cfg.GPUMemoryUtilization == 0 {
		cfg.GPUMemoryUtilization = defaultGPUUtilization
	}
	return cfg
}

// validate reports configuration errors that must fail construction.
func (cfg Config) validate() error {
	if cfg.Model == "" {
		return ErrInitialization("model identifier is required")
	}
	if cfg.GPUMemoryUtilization <= 0 || cfg.GPUMemoryUtilization > 1 {
		return ErrInitialization("gpu_memory_utilization must be in (0,1], got %g", cfg.GPUMemoryUtilization)
	}
	if cfg.TensorParallelSize < 1 {
		return ErrInitialization("tensor_parallel_size must be >= 1, got %d", cfg.TensorParallelSize)
	}
	if cfg.MaxNumBatchedTokens < 0 {
		return ErrInitialization("max_num_batched_tokens must be >= 0, got %d", cfg.MaxNumBatchedTokens)
	}
	return nil
}
