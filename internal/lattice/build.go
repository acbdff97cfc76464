package lattice

import (
	"fmt"
	"math"

	"github.com/san-kum/beamline/internal/track"
)

// Element kinds understood by the builder.
const (
	KindDrift         = "drift"
	KindQuadrupole    = "quadrupole"
	KindSextupole     = "sextupole"
	KindOctupole      = "octupole"
	KindMultipole     = "multipole"
	KindThinMultipole = "thinmultipole"
	KindDipole        = "dipole"
	KindExactMPole    = "exactmultipole"
	KindCorrector     = "corrector"
)

func methodFor(kind string) (track.Method, error) {
	switch kind {
	case KindDrift:
		return track.MethodDrift, nil
	case KindQuadrupole, KindSextupole, KindOctupole, KindMultipole, KindCorrector:
		return track.MethodStrMPole4, nil
	case KindThinMultipole:
		return track.MethodThinMPole, nil
	case KindDipole:
		return track.MethodBndMPole4, nil
	case KindExactMPole:
		return track.MethodExactMPole4, nil
	}
	return 0, fmt.Errorf("lattice: unknown element kind %q", kind)
}

// BuildParams constructs the immutable tracking parameters for an
// element from its property store. Required fields raise a FieldError
// when absent; optional fields default cleanly, with absent arrays kept
// nil so the corresponding operations are skipped during tracking.
func BuildParams(el *Element) (*track.Params, error) {
	method, err := methodFor(el.Kind)
	if err != nil {
		return nil, err
	}

	p := &track.Params{Method: method}
	if p.Length, err = el.Double("Length"); err != nil {
		return nil, err
	}

	if method != track.MethodDrift {
		if p.PolynomA, err = el.DoubleArray("PolynomA"); err != nil {
			return nil, err
		}
		if p.PolynomB, err = el.DoubleArray("PolynomB"); err != nil {
			return nil, err
		}
		if p.MaxOrder, err = el.Long("MaxOrder"); err != nil {
			return nil, err
		}
		if method != track.MethodThinMPole {
			if p.NumIntSteps, err = el.Long("NumIntSteps"); err != nil {
				return nil, err
			}
		}
	}

	if method == track.MethodBndMPole4 {
		if p.BendingAngle, err = el.Double("BendingAngle"); err != nil {
			return nil, err
		}
		p.EntranceAngle = el.OptionalDouble("EntranceAngle", 0)
		p.ExitAngle = el.OptionalDouble("ExitAngle", 0)
		p.FringeInt1 = el.OptionalDouble("FringeInt1", 0)
		p.FringeInt2 = el.OptionalDouble("FringeInt2", 0)
		p.FullGap = el.OptionalDouble("FullGap", 0)
	}

	p.FringeQuadEntrance = el.OptionalLong("FringeQuadEntrance", 0)
	p.FringeQuadExit = el.OptionalLong("FringeQuadExit", 0)
	p.FringeIntM0 = el.OptionalDoubleArray("FringeIntM0")
	p.FringeIntP0 = el.OptionalDoubleArray("FringeIntP0")
	p.T1 = el.OptionalDoubleArray("T1")
	p.T2 = el.OptionalDoubleArray("T2")
	p.R1 = el.OptionalDoubleArray("R1")
	p.R2 = el.OptionalDoubleArray("R2")
	p.RAperture = el.OptionalDoubleArray("RAperture")
	p.EAperture = el.OptionalDoubleArray("EAperture")
	if method == track.MethodExactMPole4 {
		p.MultipoleFringe = el.OptionalLong("MultipoleFringe", 0) != 0
	}

	if kick := el.OptionalDoubleArray("KickAngle"); kick != nil {
		if len(kick) != 2 {
			return nil, el.fieldErr("KickAngle", ErrWrongType)
		}
		if p.Length <= 0 {
			return nil, el.fieldErr("KickAngle", ErrWrongType)
		}
		// fold the corrector kick into private copies of the
		// polynomials; the element's own arrays stay untouched
		p.PolynomB = append([]float64(nil), p.PolynomB...)
		p.PolynomA = append([]float64(nil), p.PolynomA...)
		p.PolynomB[0] -= math.Sin(kick[0]) / p.Length
		p.PolynomA[0] += math.Sin(kick[1]) / p.Length
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("element %q: %w", el.Name, err)
	}
	return p, nil
}
