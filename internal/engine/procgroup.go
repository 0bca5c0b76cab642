package engine

import "sync"

// procGroup is the tensor-parallel worker group owned by a handle. Workers
// pull decode jobs from a shared channel; destroy drains them and is
// idempotent.
type procGroup struct {
	size    int
	jobs    chan func()
	wg      sync.WaitGroup
	destroy sync.Once
}

func newProcGroup(size int) *procGroup {
	g := &procGroup{size: size, jobs: make(chan func())}
	for i := 0; i < size; i++ {
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			for job := range g.jobs {
				job()
			}
		}()
	}
	return g
}

// submit schedules one job on the group. Must not be called after Destroy.
func (g *procGroup) submit(job func()) {
	g.jobs <- job
}

// Destroy stops the workers and waits for them to exit.
func (g *procGroup) Destroy() {
	g.destroy.Do(func() {
		close(g.jobs)
		g.wg.Wait()
	})
}
