package engine

import "sync"

// deviceMemPool tracks reserved device-memory fractions process-wide so that
// concurrent handles cannot over-commit the accelerator. Capacity is 1.0.
type deviceMemPool struct {
	mu   sync.Mutex
	used float64
}

var devicePool deviceMemPool

// memReservation is one handle's share of the pool. Release is idempotent.
type memReservation struct {
	pool     *deviceMemPool
	fraction float64
	mu       sync.Mutex
	released bool
}

// reserve claims fraction of the pool or fails without side effects.
func (p *deviceMemPool) reserve(fraction float64) (*memReservation, error) {
	if fraction <= 0 || fraction > 1 {
		return nil, ErrInitialization("memory fraction must be in (0,1], got %g", fraction)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.used+fraction > 1.0 {
		return nil, ErrInitialization("requested memory fraction %.2f exceeds available capacity %.2f", fraction, 1.0-p.used)
	}
	p.used += fraction
	return &memReservation{pool: p, fraction: fraction}, nil
}

// release returns the fraction to the pool. Safe to call more than once.
func (r *memReservation) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.pool.mu.Lock()
	r.pool.used -= r.fraction
	if r.pool.used < 0 {
		r.pool.used = 0
	}
	r.pool.mu.Unlock()
}
