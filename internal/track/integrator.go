package track

import "github.com/san-kum/beamline/internal/phase"

// stepFunc applies a drift or a kick of the given coefficient-scaled
// slice length to one particle.
type stepFunc func(r phase.Vector, l float64)

// integrate4 runs the 4th-order symmetric drift-kick splitting over
// numIntSteps slices. The seven-stage sequence per slice is a
// palindrome, which makes the composed map symplectic and
// time-reversible. All pass methods share this loop; only the drift and
// kick primitives differ per element type.
func integrate4(r phase.Vector, length float64, steps int, drift, kick stepFunc) {
	sl := length / float64(steps)
	l1 := sl * drift1
	l2 := sl * drift2
	k1 := sl * kick1
	k2 := sl * kick2
	for m := 0; m < steps; m++ {
		drift(r, l1)
		kick(r, k1)
		drift(r, l2)
		kick(r, k2)
		drift(r, l2)
		kick(r, k1)
		drift(r, l1)
	}
}

// enterElement applies the entrance misalignment and aperture checks.
// It reports false when an aperture check lost the particle, in which
// case the pass must return without touching the vector again.
func enterElement(r phase.Vector, p *Params) bool {
	if p.T1 != nil {
		translateNeg(r, p.T1)
	}
	if p.R1 != nil {
		linearMap(r, p.R1)
	}
	if p.RAperture != nil {
		checkRectAperture(r, p.RAperture)
	}
	if p.EAperture != nil {
		checkEllipAperture(r, p.EAperture)
	}
	return !r.Lost()
}

// exitElement mirrors enterElement at the exit face.
func exitElement(r phase.Vector, p *Params) {
	if p.RAperture != nil {
		checkRectAperture(r, p.RAperture)
	}
	if p.EAperture != nil {
		checkEllipAperture(r, p.EAperture)
	}
	if r.Lost() {
		return
	}
	if p.R2 != nil {
		linearMap(r, p.R2)
	}
	if p.T2 != nil {
		translate(r, p.T2)
	}
}

// StrMPole4Pass advances one particle through a straight multipole
// magnet. Already-lost particles are left untouched.
func StrMPole4Pass(r phase.Vector, p *Params) {
	if r.Lost() {
		return
	}
	if !enterElement(r, p) {
		return
	}

	b2 := p.quadStrength()
	useLinEntrance := p.FringeIntM0 != nil && p.FringeIntP0 != nil && p.FringeQuadEntrance == FringeLinear
	useLinExit := p.FringeIntM0 != nil && p.FringeIntP0 != nil && p.FringeQuadExit == FringeLinear

	// quadrupole-strength-zero elements have no fringe by construction
	if p.FringeQuadEntrance != FringeOff && b2 != 0 {
		if useLinEntrance {
			linearQuadFringeEntrance(r, b2, p.FringeIntM0, p.FringeIntP0)
		} else {
			quadFringe(r, b2, 1)
		}
	}

	integrate4(r, p.Length, p.NumIntSteps, drift6, func(r phase.Vector, k float64) {
		thinKick(r, p.PolynomA, p.PolynomB, k, p.MaxOrder)
	})

	if p.FringeQuadExit != FringeOff && b2 != 0 {
		if useLinExit {
			linearQuadFringeExit(r, b2, p.FringeIntM0, p.FringeIntP0)
		} else {
			quadFringe(r, b2, -1)
		}
	}

	exitElement(r, p)
}

// BndMPole4Pass advances one particle through a bending magnet with
// superimposed multipole components, including the dipole edge focusing
// at both faces.
func BndMPole4Pass(r phase.Vector, p *Params) {
	if r.Lost() {
		return
	}
	if !enterElement(r, p) {
		return
	}

	irho := p.BendingAngle / p.Length
	dipoleEdge(r, irho, p.EntranceAngle, p.FringeInt1, p.FullGap)

	integrate4(r, p.Length, p.NumIntSteps, drift6, func(r phase.Vector, k float64) {
		bendThinKick(r, p.PolynomA, p.PolynomB, k, irho, p.MaxOrder)
	})

	dipoleEdge(r, irho, p.ExitAngle, p.FringeInt2, p.FullGap)
	exitElement(r, p)
}

// ExactMPole4Pass is the straight multipole pass built on the exact
// drift map, with the optional Forest multipole fringe at both faces.
func ExactMPole4Pass(r phase.Vector, p *Params) {
	if r.Lost() {
		return
	}
	if !enterElement(r, p) {
		return
	}

	if p.MultipoleFringe {
		multipoleFringe(r, p.PolynomA, p.PolynomB, p.MaxOrder, true)
	}

	integrate4(r, p.Length, p.NumIntSteps, exactDrift, func(r phase.Vector, k float64) {
		thinKick(r, p.PolynomA, p.PolynomB, k, p.MaxOrder)
	})

	if p.MultipoleFringe {
		multipoleFringe(r, p.PolynomA, p.PolynomB, p.MaxOrder, false)
	}

	exitElement(r, p)
}

// DriftPass advances one particle through a field-free gap.
func DriftPass(r phase.Vector, p *Params) {
	if r.Lost() {
		return
	}
	if !enterElement(r, p) {
		return
	}
	drift6(r, p.Length)
	exitElement(r, p)
}

// ThinMPolePass applies a zero-length multipole: the polynomials hold
// integrated strengths, so the kick scale is unity.
func ThinMPolePass(r phase.Vector, p *Params) {
	if r.Lost() {
		return
	}
	if !enterElement(r, p) {
		return
	}
	thinKick(r, p.PolynomA, p.PolynomB, 1, p.MaxOrder)
	exitElement(r, p)
}

// Apply dispatches to the pass method selected by p.Method.
func (p *Params) Apply(r phase.Vector) {
	switch p.Method {
	case MethodStrMPole4:
		StrMPole4Pass(r, p)
	case MethodBndMPole4:
		BndMPole4Pass(r, p)
	case MethodExactMPole4:
		ExactMPole4Pass(r, p)
	case MethodThinMPole:
		ThinMPolePass(r, p)
	default:
		DriftPass(r, p)
	}
}
