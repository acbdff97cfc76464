package track

import (
	"math"

	"github.com/san-kum/beamline/internal/phase"
)

// fastDrift advances a particle through a field-free gap. normL is the
// physical length already divided by (1+delta); the ct term keeps the
// quadratic momentum dependence so the map stays symplectic for the
// split Hamiltonian.
func fastDrift(r phase.Vector, normL float64) {
	r[phase.X] += normL * r[phase.PX]
	r[phase.Y] += normL * r[phase.PY]
	r[phase.CT] += normL * (r[phase.PX]*r[phase.PX] + r[phase.PY]*r[phase.PY]) /
		(2 * (1 + r[phase.Delta]))
}

// drift6 is the stand-alone drift map over a physical length l, used by
// the drift pass where the caller has not pre-normalized the length.
func drift6(r phase.Vector, l float64) {
	norm := 1 / (1 + r[phase.Delta])
	fastDrift(r, l*norm)
}

// pz returns the longitudinal momentum sqrt((1+d)^2 - px^2 - py^2).
func pz(r phase.Vector) float64 {
	d1 := 1 + r[phase.Delta]
	return math.Sqrt(d1*d1 - r[phase.PX]*r[phase.PX] - r[phase.PY]*r[phase.PY])
}

// exactDrift is the closed-form drift valid at arbitrarily large
// transverse angles.
func exactDrift(r phase.Vector, l float64) {
	normL := l / pz(r)
	r[phase.X] += r[phase.PX] * normL
	r[phase.Y] += r[phase.PY] * normL
	r[phase.CT] += normL*(1+r[phase.Delta]) - l
}
