package track

import (
	"runtime"
	"sync"

	"github.com/san-kum/beamline/internal/phase"
)

// minParallelBatch is the batch size below which goroutine fan-out is
// not worth the scheduling cost.
const minParallelBatch = 256

// Track advances every live particle in the batch through one element,
// in place. Lost particles are skipped and never touched again. Params
// is read-only during the call, so the same element may be shared by
// concurrent Track calls over disjoint batches.
func Track(b phase.Batch, p *Params) {
	n := b.Count()
	for i := 0; i < n; i++ {
		r := b.At(i)
		if r.Lost() {
			continue
		}
		p.Apply(r)
	}
}

// TrackParallel is Track with the particle loop chunked over workers.
// Particles are independent within one element call, so the split is
// free of cross-particle ordering constraints. workers <= 0 selects
// GOMAXPROCS.
func TrackParallel(b phase.Batch, p *Params, workers int) {
	n := b.Count()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 1 || n < minParallelBatch {
		Track(b, p)
		return
	}
	if chunks := n / (minParallelBatch / 4); chunks < workers {
		workers = chunks
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				r := b.At(i)
				if r.Lost() {
					continue
				}
				p.Apply(r)
			}
		}(start, end)
	}
	wg.Wait()
}
