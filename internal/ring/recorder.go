package ring

import "github.com/san-kum/beamline/internal/phase"

// Recorder is an Observer that stores the turn-by-turn coordinates of
// one monitored particle, for export or turn-by-turn analysis.
type Recorder struct {
	Particle int
	Turns    []int
	Coords   []phase.Vector
}

func NewRecorder(particle int) *Recorder {
	return &Recorder{Particle: particle}
}

func (rec *Recorder) OnTurn(turn int, b phase.Batch) {
	if rec.Particle >= b.Count() {
		return
	}
	rec.Turns = append(rec.Turns, turn)
	rec.Coords = append(rec.Coords, b.At(rec.Particle).Clone())
}
