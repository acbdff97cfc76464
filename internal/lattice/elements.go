package lattice

// DefaultIntSteps is the default number of integration slices for
// thick magnets.
const DefaultIntSteps = 10

// NewDrift builds a field-free gap.
func NewDrift(name string, length float64) *Element {
	return NewElement(name, KindDrift).Set("Length", length)
}

func newMultipole(name, kind string, length float64, polyA, polyB []float64, maxOrder int) *Element {
	return NewElement(name, kind).
		Set("Length", length).
		Set("PolynomA", polyA).
		Set("PolynomB", polyB).
		Set("MaxOrder", maxOrder).
		Set("NumIntSteps", DefaultIntSteps)
}

// NewQuadrupole builds a normal quadrupole of strength k [1/m^2].
func NewQuadrupole(name string, length, k float64) *Element {
	return newMultipole(name, KindQuadrupole, length,
		[]float64{0, 0}, []float64{0, k}, 1)
}

// NewSextupole builds a normal sextupole of strength h [1/m^3].
func NewSextupole(name string, length, h float64) *Element {
	return newMultipole(name, KindSextupole, length,
		[]float64{0, 0, 0}, []float64{0, 0, h}, 2)
}

// NewOctupole builds a normal octupole.
func NewOctupole(name string, length, o float64) *Element {
	return newMultipole(name, KindOctupole, length,
		[]float64{0, 0, 0, 0}, []float64{0, 0, 0, o}, 3)
}

// NewMultipole builds a thick general multipole from coefficient arrays.
func NewMultipole(name string, length float64, polyA, polyB []float64) *Element {
	maxOrder := len(polyB) - 1
	if len(polyA)-1 < maxOrder {
		maxOrder = len(polyA) - 1
	}
	return newMultipole(name, KindMultipole, length, polyA, polyB, maxOrder)
}

// NewThinMultipole builds a zero-length multipole whose polynomials
// hold integrated strengths.
func NewThinMultipole(name string, polyA, polyB []float64) *Element {
	maxOrder := len(polyB) - 1
	if len(polyA)-1 < maxOrder {
		maxOrder = len(polyA) - 1
	}
	return NewElement(name, KindThinMultipole).
		Set("Length", 0.0).
		Set("PolynomA", polyA).
		Set("PolynomB", polyB).
		Set("MaxOrder", maxOrder)
}

// NewDipole builds a sector bend of the given bending angle [rad],
// optionally with a superimposed quadrupole component k.
func NewDipole(name string, length, angle, k float64) *Element {
	return newMultipole(name, KindDipole, length,
		[]float64{0, 0}, []float64{0, k}, 1).
		Set("BendingAngle", angle)
}

// NewRBend builds a rectangular bend: a dipole with both edge angles
// set to half the bending angle.
func NewRBend(name string, length, angle, k float64) *Element {
	return NewDipole(name, length, angle, k).
		Set("EntranceAngle", angle/2).
		Set("ExitAngle", angle/2)
}

// NewExactMultipole builds a thick multipole tracked with the exact
// drift map, optionally with the multipole fringe at both faces.
func NewExactMultipole(name string, length float64, polyA, polyB []float64, fringe bool) *Element {
	maxOrder := len(polyB) - 1
	if len(polyA)-1 < maxOrder {
		maxOrder = len(polyA) - 1
	}
	el := newMultipole(name, KindExactMPole, length, polyA, polyB, maxOrder)
	if fringe {
		el.Set("MultipoleFringe", 1)
	}
	return el
}

// NewCorrector builds an orbit corrector with horizontal and vertical
// kick angles [rad].
func NewCorrector(name string, length, kickX, kickY float64) *Element {
	return newMultipole(name, KindCorrector, length,
		[]float64{0}, []float64{0}, 0).
		Set("KickAngle", []float64{kickX, kickY})
}
