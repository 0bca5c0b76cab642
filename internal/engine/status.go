package engine

import (
	"time"

	"gend/pkg/types"
)

// Snapshot is a read-only projection of the handle state.
type Snapshot struct {
	State                State
	Model                string
	MaxModelLen          int
	GPUMemoryUtilization float64
	TensorParallelSize   int
	Requests             int64
	GeneratedTokens      int64
	Err                  string
}

// Snapshot returns a read-only view of the handle.
func (h *Handle) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

// snapshotLocked builds a Snapshot. Caller holds h.mu.
func (h *Handle) snapshotLocked() Snapshot {
	h.statsMu.Lock()
	defer h.statsMu.Unlock()
	return Snapshot{
		State:                h.state,
		Model:                h.model.ID,
		MaxModelLen:          h.cfg.MaxModelLen,
		GPUMemoryUtilization: h.cfg.GPUMemoryUtilization,
		TensorParallelSize:   h.cfg.TensorParallelSize,
		Requests:             h.requests,
		GeneratedTokens:      h.genTokens,
		Err:                  h.lastErr,
	}
}

// Status builds a detailed status response for /status.
func (h *Handle) Status() types.StatusResponse {
	s := h.Snapshot()
	now := time.Now()
	return types.StatusResponse{
		State:                string(s.State),
		Model:                s.Model,
		MaxModelLen:          s.MaxModelLen,
		GPUMemoryUtilization: s.GPUMemoryUtilization,
		TensorParallelSize:   s.TensorParallelSize,
		Requests:             s.Requests,
		GeneratedTokens:      s.GeneratedTokens,
		Error:                s.Err,
		ServerTimeUnix:       now.Unix(),
		UptimeSeconds:        int64(now.Sub(h.startTime).Seconds()),
	}
}
