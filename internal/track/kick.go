package track

import "github.com/san-kum/beamline/internal/phase"

// fieldSum evaluates the transverse multipole field as the complex
// polynomial sum (B[n] + i*A[n]) * (x+iy)^n by a Horner recurrence from
// maxOrder down to 0, which bounds the rounding-error growth.
func fieldSum(r phase.Vector, a, b []float64, maxOrder int) (re, im float64) {
	re = b[maxOrder]
	im = a[maxOrder]
	for i := maxOrder - 1; i >= 0; i-- {
		reTmp := re*r[phase.X] - im*r[phase.Y] + b[i]
		im = im*r[phase.X] + re*r[phase.Y] + a[i]
		re = reTmp
	}
	return re, im
}

// thinKick applies the momentum kick of a thin straight multipole of
// integrated strength l.
func thinKick(r phase.Vector, a, b []float64, l float64, maxOrder int) {
	re, im := fieldSum(r, a, b, maxOrder)
	r[phase.PX] -= l * re
	r[phase.PY] += l * im
}

// bendThinKick is the thin-kick map in a curved frame with inverse
// bending radius irho. On top of the multipole kick it applies the
// weak-focusing dipole term and the path-length correction to ct.
func bendThinKick(r phase.Vector, a, b []float64, l, irho float64, maxOrder int) {
	re, im := fieldSum(r, a, b, maxOrder)
	r[phase.PX] -= l * (re - (r[phase.Delta]-r[phase.X]*irho)*irho)
	r[phase.PY] += l * im
	r[phase.CT] += l * irho * r[phase.X]
}
