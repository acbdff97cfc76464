package track

import (
	"math"

	"github.com/san-kum/beamline/internal/phase"
)

// checkRectAperture marks the particle lost when it is outside the
// rectangular boundary given by half-widths [hx, hy].
func checkRectAperture(r phase.Vector, limits []float64) {
	if math.Abs(r[phase.X]) > limits[0] || math.Abs(r[phase.Y]) > limits[1] {
		r.MarkLost()
	}
}

// checkEllipAperture marks the particle lost when it is outside the
// elliptical boundary with half-axes [hx, hy].
func checkEllipAperture(r phase.Vector, limits []float64) {
	xr := r[phase.X] / limits[0]
	yr := r[phase.Y] / limits[1]
	if xr*xr+yr*yr > 1 {
		r.MarkLost()
	}
}
