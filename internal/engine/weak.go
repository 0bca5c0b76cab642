package engine

import "gend/pkg/types"

// Weak is a non-owning observation handle. It can inspect the engine but
// never extends its lifetime nor blocks teardown; once the target is torn
// down every accessor fails with a use-after-teardown error.
type Weak struct {
	h *Handle
}

// Weak returns an observation handle for h.
func (h *Handle) Weak() *Weak { return &Weak{h: h} }

// Alive reports whether the target handle is still Ready.
func (w *Weak) Alive() bool { return w.h.Ready() }

// Model returns the loaded model, or an error if the target is gone.
func (w *Weak) Model() (types.Model, error) {
	w.h.mu.RLock()
	defer w.h.mu.RUnlock()
	if w.h.state != StateReady {
		return types.Model{}, ErrUseAfterTeardown("weak handle")
	}
	return w.h.model, nil
}

// MaxModelLen returns the effective maximum sequence length, or an error if
// the target is gone.
func (w *Weak) MaxModelLen() (int, error) {
	w.h.mu.RLock()
	defer w.h.mu.RUnlock()
	if w.h.state != StateReady {
		return 0, ErrUseAfterTeardown("weak handle")
	}
	return w.h.cfg.MaxModelLen, nil
}

// Snapshot returns a read-only projection of the target, or an error if the
// target is gone. The state check and the read happen under one lock so a
// concurrent teardown can never surface a torn-down snapshot here.
func (w *Weak) Snapshot() (Snapshot, error) {
	w.h.mu.RLock()
	defer w.h.mu.RUnlock()
	if w.h.state != StateReady {
		return Snapshot{}, ErrUseAfterTeardown("weak handle")
	}
	return w.h.snapshotLocked(), nil
}
