package ring

import (
	"context"
	"fmt"

	"github.com/san-kum/beamline/internal/lattice"
	"github.com/san-kum/beamline/internal/phase"
	"github.com/san-kum/beamline/internal/track"
)

// Observer is notified after each completed turn with the current batch
// state. The batch must be treated as read-only.
type Observer interface {
	OnTurn(turn int, b phase.Batch)
}

// Config controls a multi-turn tracking run.
type Config struct {
	Turns   int
	Workers int // >1 enables the parallel particle loop
}

// Result summarizes a tracking run. LossTurn is -1 for particles that
// survived all turns.
type Result struct {
	Turns    int
	Count    int
	Survived int
	LossTurn []int
}

// Ring is an ordered sequence of lattice elements tracked turn after
// turn. Element parameters are built once through the cache and reused
// for every particle and every turn.
type Ring struct {
	elements  []*lattice.Element
	cache     *lattice.Cache
	observers []Observer
}

func New(elements ...*lattice.Element) *Ring {
	return &Ring{
		elements: elements,
		cache:    lattice.NewCache(),
	}
}

func (rg *Ring) Append(elements ...*lattice.Element) {
	rg.elements = append(rg.elements, elements...)
}

func (rg *Ring) AddObserver(o Observer) {
	rg.observers = append(rg.observers, o)
}

// Invalidate drops the cached parameters of an element after its
// properties changed.
func (rg *Ring) Invalidate(el *lattice.Element) {
	rg.cache.Invalidate(el)
}

// Track advances the batch through cfg.Turns full turns, mutating it in
// place. A configuration error in any element aborts the whole run
// before the first turn. Particle loss is not an error: lost particles
// keep their frozen coordinates and are skipped for the rest of the
// run.
func (rg *Ring) Track(ctx context.Context, b phase.Batch, cfg Config) (*Result, error) {
	if cfg.Turns < 1 {
		return nil, fmt.Errorf("ring: turns must be >= 1, got %d", cfg.Turns)
	}
	if len(rg.elements) == 0 {
		return nil, fmt.Errorf("ring: no elements")
	}

	// surface configuration errors before touching the batch
	params := make([]*track.Params, len(rg.elements))
	for i, el := range rg.elements {
		p, err := rg.cache.Params(el)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}

	n := b.Count()
	result := &Result{
		Turns:    cfg.Turns,
		Count:    n,
		LossTurn: make([]int, n),
	}
	for i := range result.LossTurn {
		result.LossTurn[i] = -1
	}
	markLosses(b, result.LossTurn, 0)

	for turn := 0; turn < cfg.Turns; turn++ {
		select {
		case <-ctx.Done():
			finishResult(b, result)
			return result, ctx.Err()
		default:
		}

		for _, p := range params {
			if cfg.Workers > 1 {
				track.TrackParallel(b, p, cfg.Workers)
			} else {
				track.Track(b, p)
			}
		}

		markLosses(b, result.LossTurn, turn)
		for _, o := range rg.observers {
			o.OnTurn(turn, b)
		}
	}

	finishResult(b, result)
	return result, nil
}

func markLosses(b phase.Batch, lossTurn []int, turn int) {
	for i := range lossTurn {
		if lossTurn[i] < 0 && b.At(i).Lost() {
			lossTurn[i] = turn
		}
	}
}

func finishResult(b phase.Batch, r *Result) {
	r.Survived = b.Survivors()
}
