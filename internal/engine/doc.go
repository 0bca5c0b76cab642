// Package engine owns the heavy, process-wide generation resources: the
// device-memory reservation, the tensor-parallel worker group and the loaded
// model weights. The Handle exposes a single batched Generate operation plus
// an explicit lifecycle (Uninitialized -> Ready -> TornDown). It is
// structured into small files by concern:
//
//   - handle.go: Handle type, construction, Generate, Teardown.
//   - config.go: Config and package defaults.
//   - errors.go: error types and helpers (IsInitialization, IsResourceConflict,
//     IsUseAfterTeardown, IsEngine).
//   - devicemem.go: process-wide device-memory fraction accounting.
//   - procgroup.go: tensor-parallel worker group.
//   - weak.go: non-owning observation handles.
//   - status.go: Snapshot/Status reporting helpers.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - tokenizer.go: stable word tokenizer shared by runtimes.
//
// Build tags and runtimes:
//
//   - Built-in deterministic runtime (standard): runtime_builtin.go. Greedy
//     decoding is a pure function of the prompt tokens.
//   - In-process llama: uses the go-llama.cpp binding. Enabled with
//     `-tags=llama` (runtime_llama.go); a no-CGO stub exists when the tag is
//     not set (runtime_llama_stub.go). The binding is not reentrant, so it is
//     wrapped in the serializing runtime (runtime_serial.go).
//
// External packages should treat this package as the resource owner and use
// public methods only (New, Generate, Teardown, Weak, Ready, Status).
package engine
