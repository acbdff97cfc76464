package track

import (
	"math"

	"github.com/san-kum/beamline/internal/phase"
)

// quadFringe is the hard-edge quadrupole fringe map (Lee-Whiting thin
// lens limit). sign is +1 at the entrance face, -1 at the exit face.
func quadFringe(r phase.Vector, b2, sign float64) {
	u := sign * b2 / (12 * (1 + r[phase.Delta]))
	x, px := r[phase.X], r[phase.PX]
	y, py := r[phase.Y], r[phase.PY]
	x2 := x * x
	y2 := y * y
	xy := x * y
	gx := u * (x2 + 3*y2) * x
	gy := u * (y2 + 3*x2) * y
	dpx := 3 * u * (2*xy*py - (x2+y2)*px)
	dpy := 3 * u * (2*xy*px - (x2+y2)*py)

	r[phase.X] += gx
	r[phase.Y] -= gy
	r[phase.CT] -= (gy*py - gx*px) / (1 + r[phase.Delta])
	r[phase.PX] += dpx
	r[phase.PY] -= dpy
}

// quadPartialFringeMatrix fills the decoupled 4x4 block matrix of the
// elegant-style linear fringe map for one half of the fringe region.
// fringeInt holds the five field integrals pre-normalized by the
// quadrupole strength; they are treated as opaque coefficients.
func quadPartialFringeMatrix(rm *[4][4]float64, k1, inFringe float64, fringeInt []float64, part int) {
	k1sqr := k1 * k1

	var j1x, j2x, j3x float64
	if part == 1 {
		j1x = inFringe * (k1*fringeInt[1] - 2*k1sqr*fringeInt[3]/3)
		j2x = inFringe * (k1 * fringeInt[2])
		j3x = inFringe * (k1sqr * (fringeInt[2] + fringeInt[4]))
	} else {
		j1x = inFringe * (k1*fringeInt[1] - 2*k1sqr*fringeInt[3]/3)
		j2x = -j1x
		j3x = inFringe * (k1sqr * (fringeInt[4] - fringeInt[2]))
	}
	j1y := -j1x
	j2y := -j2x
	j3y := j3x

	expJ1x := math.Exp(j1x)
	rm[0][0] = expJ1x
	rm[0][1] = j2x / expJ1x
	rm[1][0] = expJ1x * j3x
	rm[1][1] = (1 + j2x*j3x) / expJ1x

	expJ1y := math.Exp(j1y)
	rm[2][2] = expJ1y
	rm[2][3] = j2y / expJ1y
	rm[3][2] = expJ1y * j3y
	rm[3][3] = (1 + j2y*j3y) / expJ1y
}

func applyFringeMatrix(r phase.Vector, rm *[4][4]float64) {
	x, px := r[phase.X], r[phase.PX]
	y, py := r[phase.Y], r[phase.PY]
	r[phase.X] = rm[0][0]*x + rm[0][1]*px
	r[phase.PX] = rm[1][0]*x + rm[1][1]*px
	r[phase.Y] = rm[2][2]*y + rm[2][3]*py
	r[phase.PY] = rm[3][2]*y + rm[3][3]*py
}

// linearQuadFringeEntrance combines the two elegant-style partial
// matrices with the hard-edge map sandwiched between them. The role of
// the entrance/exit integral arrays is swapped at the entrance face.
func linearQuadFringeEntrance(r phase.Vector, b2 float64, fringeIntM0, fringeIntP0 []float64) {
	var rm [4][4]float64
	fringeIntM := fringeIntP0
	fringeIntP := fringeIntM0
	k1 := b2 / (1 + r[phase.Delta])

	quadPartialFringeMatrix(&rm, k1, -1, fringeIntM, 1)
	applyFringeMatrix(r, &rm)
	quadFringe(r, b2, 1)
	quadPartialFringeMatrix(&rm, k1, -1, fringeIntP, 2)
	applyFringeMatrix(r, &rm)
}

func linearQuadFringeExit(r phase.Vector, b2 float64, fringeIntM0, fringeIntP0 []float64) {
	var rm [4][4]float64
	k1 := b2 / (1 + r[phase.Delta])

	quadPartialFringeMatrix(&rm, k1, 1, fringeIntP0, 1)
	applyFringeMatrix(r, &rm)
	quadFringe(r, b2, -1)
	quadPartialFringeMatrix(&rm, k1, 1, fringeIntM0, 2)
	applyFringeMatrix(r, &rm)
}

// multipoleFringe is the exact multipole fringe map of Forest 13.29,
// summed over all multipole components up to maxOrder. entrance selects
// the sign of the generating function.
func multipoleFringe(r phase.Vector, a, b []float64, maxOrder int, entrance bool) {
	sign := 1.0
	if !entrance {
		sign = -1.0
	}

	var fx, fy, fxx, fxy, fyx, fyy float64

	// rx+i*ix carries (x+iy)^j across the loop
	rx := 1.0
	ix := 0.0
	for n := 0; n <= maxOrder; n++ {
		bn := b[n]
		an := a[n]
		j := float64(n + 1)

		drx := rx
		dix := ix
		rx = drx*r[phase.X] - dix*r[phase.Y]
		ix = drx*r[phase.Y] + dix*r[phase.X]

		f1 := -sign / 4 / (j + 1)
		u := (bn*rx - an*ix) * f1
		v := (bn*ix + an*rx) * f1
		du := (bn*drx - an*dix) * f1
		dv := (bn*dix + an*drx) * f1

		dux := j * du
		dvx := j * dv
		duy := -j * dv
		dvy := j * du

		nf := (j + 2) / j

		fx += u*r[phase.X] + nf*v*r[phase.Y]
		fy += u*r[phase.Y] - nf*v*r[phase.X]

		fxx += dux*r[phase.X] + u + nf*r[phase.Y]*dvx
		fxy += duy*r[phase.X] + nf*v + nf*r[phase.Y]*dvy
		fyx += dux*r[phase.Y] - nf*v - nf*r[phase.X]*dvx
		fyy += duy*r[phase.Y] + u - nf*r[phase.X]*dvy
	}

	del := 1 / (1 + r[phase.Delta])

	// solve the implicit 2x2 system for the new momenta
	ma := 1 - fxx*del
	mb := -fyx * del
	md := 1 - fyy*del
	mc := -fxy * del

	r[phase.X] -= fx * del
	r[phase.Y] -= fy * del

	det := ma*md - mb*mc
	pxf := (md*r[phase.PX] - mb*r[phase.PY]) / det
	pyf := (ma*r[phase.PY] - mc*r[phase.PX]) / det
	r[phase.PY] = pyf
	r[phase.PX] = pxf
	r[phase.CT] -= (pxf*fx + pyf*fy) * del * del
}

// dipoleEdge is the linear dipole edge focusing with the field-integral
// correction of the vertical focal strength.
func dipoleEdge(r phase.Vector, irho, edgeAngle, fint, gap float64) {
	fx := irho * math.Tan(edgeAngle)
	psi := edgeAngle - irho*gap*fint*(1+math.Sin(edgeAngle)*math.Sin(edgeAngle))/math.Cos(edgeAngle)
	fy := irho * math.Tan(psi)
	r[phase.PX] += r[phase.X] * fx
	r[phase.PY] -= r[phase.Y] * fy
}
