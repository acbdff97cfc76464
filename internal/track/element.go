package track

// Method selects the pass method an element is tracked with.
type Method int

const (
	MethodDrift Method = iota
	MethodStrMPole4
	MethodBndMPole4
	MethodExactMPole4
	MethodThinMPole
)

// Fringe flag values for FringeQuadEntrance / FringeQuadExit.
const (
	FringeOff      = 0
	FringeHardEdge = 1
	FringeLinear   = 2
)

// Params is the immutable per-element configuration. It is built once
// per element, cached by the caller and shared read-only across all
// particles and turns; tracking never mutates it. A nil optional field
// means the corresponding operation is skipped entirely, which in
// floating point is not the same as applying a neutral transform.
type Params struct {
	Method      Method
	Length      float64
	PolynomA    []float64
	PolynomB    []float64
	MaxOrder    int
	NumIntSteps int

	// quadrupole fringe fields
	FringeQuadEntrance int
	FringeQuadExit     int
	FringeIntM0        []float64 // 5 integrals, pre-normalized by the quad strength
	FringeIntP0        []float64

	// misalignment: entrance subtracts T1 then maps by R1,
	// exit maps by R2 then adds T2
	T1, T2 []float64 // len 6
	R1, R2 []float64 // len 36, row-major

	// physical apertures, half-widths [hx, hy]
	RAperture []float64
	EAperture []float64

	// bend geometry (MethodBndMPole4)
	BendingAngle  float64
	EntranceAngle float64
	ExitAngle     float64
	FringeInt1    float64
	FringeInt2    float64
	FullGap       float64

	// exact multipole fringe at both faces (MethodExactMPole4)
	MultipoleFringe bool
}

// Validate checks the configuration invariants. It is called by the
// lattice builder before a Params enters the cache.
func (p *Params) Validate() error {
	if p.Length < 0 {
		return configErr("Length", ErrNegativeLength)
	}
	if p.NumIntSteps < 1 && p.Method != MethodDrift && p.Method != MethodThinMPole {
		return configErr("NumIntSteps", ErrNoSteps)
	}
	if p.Method != MethodDrift {
		if p.MaxOrder < 0 || p.MaxOrder >= len(p.PolynomA) {
			return configErr("PolynomA", ErrMaxOrder)
		}
		if p.MaxOrder >= len(p.PolynomB) {
			return configErr("PolynomB", ErrMaxOrder)
		}
	}
	if p.FringeQuadEntrance < 0 || p.FringeQuadEntrance > 2 {
		return configErr("FringeQuadEntrance", ErrBadFringeFlag)
	}
	if p.FringeQuadExit < 0 || p.FringeQuadExit > 2 {
		return configErr("FringeQuadExit", ErrBadFringeFlag)
	}
	for _, f := range []struct {
		name string
		arr  []float64
		n    int
	}{
		{"FringeIntM0", p.FringeIntM0, 5},
		{"FringeIntP0", p.FringeIntP0, 5},
		{"T1", p.T1, 6},
		{"T2", p.T2, 6},
		{"R1", p.R1, 36},
		{"R2", p.R2, 36},
		{"RAperture", p.RAperture, 2},
		{"EAperture", p.EAperture, 2},
	} {
		if f.arr != nil && len(f.arr) != f.n {
			return configErr(f.name, ErrBadShape)
		}
	}
	return nil
}

// quadStrength returns the normal quadrupole coefficient, zero when the
// polynomial does not extend that far.
func (p *Params) quadStrength() float64 {
	if len(p.PolynomB) > 1 {
		return p.PolynomB[1]
	}
	return 0
}
