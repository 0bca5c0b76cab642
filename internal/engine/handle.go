package engine

import (
	"context"
	"sync"
	"time"

	"gend/pkg/types"
)

// State represents the lifecycle state of a Handle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateTornDown      State = "torndown"
)

// Handle owns the process-wide generation resources: the device-memory
// reservation, the tensor-parallel worker group and the loaded model. It is
// the only component that allocates or releases them. Lifecycle is
// Uninitialized -> Ready -> TornDown; TornDown is terminal.
type Handle struct {
	// mu serializes lifecycle transitions against generate calls: Generate
	// holds the read side for its full duration, Teardown the write side.
	mu    sync.RWMutex
	state State

	cfg   Config
	model types.Model
	rt    Runtime
	mem   *memReservation
	group *procGroup
	pub   EventPublisher

	genCh chan struct{} // size 1: single in-flight generate call

	statsMu   sync.Mutex
	requests  int64
	genTokens int64
	lastErr   string

	startTime time.Time
}

// Exclusive process-wide ownership: at most one Ready handle at a time.
var (
	activeMu sync.Mutex
	active   *Handle
)

type options struct {
	rt       Runtime
	pub      EventPublisher
	registry []types.Model
}

// Option customizes Handle construction.
type Option func(*options)

// WithRuntime selects the model execution backend. Defaults to the built-in
// deterministic runtime.
func WithRuntime(rt Runtime) Option { return func(o *options) { o.rt = rt } }

// WithPublisher installs an event publisher for lifecycle events.
func WithPublisher(p EventPublisher) Option { return func(o *options) { o.pub = p } }

// WithRegistry resolves Config.Model against the given model registry.
// Without a registry the identifier is treated as a built-in model id.
func WithRegistry(models []types.Model) Option {
	return func(o *options) { o.registry = models }
}

// New constructs a Ready handle: it claims the process-wide engine slot,
// reserves the configured device-memory fraction, starts the tensor-parallel
// worker group and loads model weights. On any failure every partially
// acquired resource is released before the error propagates.
func New(cfg Config, opts ...Option) (*Handle, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := options{rt: NewBuiltinRuntime(), pub: noopPublisher{}}
	for _, opt := range opts {
		opt(&o)
	}

	mdl, err := resolveModel(cfg.Model, o.registry)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		state:     StateUninitialized,
		cfg:       cfg,
		model:     mdl,
		rt:        o.rt,
		pub:       o.pub,
		genCh:     make(chan struct{}, 1),
		startTime: time.Now(),
	}

	activeMu.Lock()
	if active != nil {
		held := active.cfg.Model
		activeMu.Unlock()
		return nil, resourceConflictError{model: held}
	}
	active = h
	activeMu.Unlock()

	h.pub.Publish(Event{Name: "init_start", Model: mdl.ID, Fields: map[string]any{
		"gpu_memory_utilization": cfg.GPUMemoryUtilization,
		"tensor_parallel_size":   cfg.TensorParallelSize,
	}})

	fail := func(err error) (*Handle, error) {
		if h.group != nil {
			h.group.Destroy()
		}
		if h.mem != nil {
			h.mem.release()
		}
		activeMu.Lock()
		if active == h {
			active = nil
		}
		activeMu.Unlock()
		return nil, err
	}

	h.mem, err = devicePool.reserve(cfg.GPUMemoryUtilization)
	if err != nil {
		return fail(err)
	}
	h.group = newProcGroup(cfg.TensorParallelSize)
	if err := h.rt.Load(mdl); err != nil {
		return fail(ErrInitialization("load model %s: %v", mdl.ID, err))
	}

	h.mu.Lock()
	h.state = StateReady
	h.mu.Unlock()
	engineReady.Set(1)
	h.pub.Publish(Event{Name: "init_ready", Model: mdl.ID, Fields: map[string]any{}})
	return h, nil
}

// resolveModel looks up id in the registry, or synthesizes a built-in entry
// when no registry is configured.
func resolveModel(id string, registry []types.Model) (types.Model, error) {
	if len(registry) == 0 {
		return types.Model{ID: id, Name: id}, nil
	}
	for _, m := range registry {
		if m.ID == id {
			return m, nil
		}
	}
	return types.Model{}, ErrInitialization("model not found in registry: %s", id)
}

// Ready reports whether the handle can serve generate calls.
func (h *Handle) Ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state == StateReady
}

// Generate decodes one batch. Results align positionally with requests; the
// invariant len(prompt ids) + len(emitted ids) <= MaxModelLen holds for every
// completion, with generation truncated (finish reason "length") rather than
// failed when the requested token count exceeds the remaining budget.
func (h *Handle) Generate(ctx context.Context, reqs []types.GenerationRequest) ([]types.RequestOutput, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != StateReady {
		return nil, ErrUseAfterTeardown("generate")
	}
	if len(reqs) == 0 {
		return []types.RequestOutput{}, nil
	}

	// One batch in flight; later callers queue here in FIFO-ish order.
	select {
	case h.genCh <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-h.genCh }()

	promptIDs := make([][]int, len(reqs))
	for i, req := range reqs {
		ids, err := h.promptTokens(req.Prompt)
		if err != nil {
			h.noteErr(err)
			return nil, err
		}
		promptIDs[i] = ids
	}

	results := make([]types.RequestOutput, len(reqs))
	errs := make([]error, len(reqs))
	for _, run := range h.batchRuns(promptIDs) {
		var wg sync.WaitGroup
		for _, idx := range run {
			i := idx
			wg.Add(1)
			h.group.submit(func() {
				defer wg.Done()
				out, err := h.decodeOne(ctx, promptIDs[i], reqs[i].Sampling)
				if err != nil {
					errs[i] = err
					return
				}
				results[i] = out
			})
		}
		wg.Wait()
	}
	for _, err := range errs {
		if err != nil {
			h.noteErr(err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrInternal("decode: %v", err)
		}
	}

	total := 0
	for _, r := range results {
		for _, o := range r.Outputs {
			total += len(o.TokenIDs)
		}
	}
	h.statsMu.Lock()
	h.requests += int64(len(reqs))
	h.genTokens += int64(total)
	h.statsMu.Unlock()
	generateCallsTotal.Inc()
	generateRequestsTotal.Add(float64(len(reqs)))
	generatedTokensTotal.Add(float64(total))
	return results, nil
}

// promptTokens converts a prompt variant into token ids.
func (h *Handle) promptTokens(p types.Prompt) ([]int, error) {
	switch v := p.(type) {
	case types.TextPrompt:
		return h.rt.Encode(string(v))
	case types.TokensPrompt:
		return []int(v), nil
	default:
		return nil, ErrInternal("unknown prompt variant %T", p)
	}
}

// batchRuns splits request indices into runs whose prompt tokens fit the
// configured batched-token budget. Each run holds at least one request.
func (h *Handle) batchRuns(promptIDs [][]int) [][]int {
	budget := h.cfg.MaxNumBatchedTokens
	if budget <= 0 {
		all := make([]int, len(promptIDs))
		for i := range promptIDs {
			all[i] = i
		}
		return [][]int{all}
	}
	var runs [][]int
	var run []int
	used := 0
	for i, ids := range promptIDs {
		if len(run) > 0 && used+len(ids) > budget {
			runs = append(runs, run)
			run = nil
			used = 0
		}
		run = append(run, i)
		used += len(ids)
	}
	if len(run) > 0 {
		runs = append(runs, run)
	}
	return runs
}

// decodeOne runs one request on the runtime with the length budget applied.
func (h *Handle) decodeOne(ctx context.Context, promptIDs []int, params types.SamplingParams) (types.RequestOutput, error) {
	budget := h.cfg.MaxModelLen - len(promptIDs)
	if budget < 0 {
		budget = 0
	}
	maxNew := params.MaxTokens
	if maxNew <= 0 {
		maxNew = types.DefaultMaxTokens
	}
	if maxNew < budget {
		budget = maxNew
	}
	out, err := h.rt.Decode(ctx, promptIDs, params, budget)
	if err != nil {
		return types.RequestOutput{}, err
	}
	// Backends must honor the budget; clamp regardless so the length
	// invariant holds at this boundary.
	if len(out.TokenIDs) > budget {
		out.TokenIDs = out.TokenIDs[:budget]
		out.FinishReason = types.FinishLength
	}
	return types.RequestOutput{
		PromptTokenIDs: promptIDs,
		Outputs:        []types.CompletionOutput{out},
	}, nil
}

func (h *Handle) noteErr(err error) {
	h.statsMu.Lock()
	h.lastErr = err.Error()
	h.statsMu.Unlock()
}

// Teardown releases device memory, destroys the worker group and unloads the
// model. It waits for in-flight generate calls to finish first, is idempotent
// and safe to call from any holder, including while weak handles exist.
func (h *Handle) Teardown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateTornDown {
		return
	}
	h.state = StateTornDown

	h.group.Destroy()
	_ = h.rt.Unload()
	h.mem.release()
	engineReady.Set(0)

	activeMu.Lock()
	if active == h {
		active = nil
	}
	activeMu.Unlock()

	h.pub.Publish(Event{Name: "teardown", Model: h.model.ID, Fields: map[string]any{}})
}
