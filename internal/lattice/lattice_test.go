package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/beamline/internal/track"
)

func TestElementFieldAccess(t *testing.T) {
	el := NewElement("QF", KindQuadrupole).
		Set("Length", 0.5).
		Set("MaxOrder", 1).
		Set("PolynomB", []float64{0, 1.2})

	l, err := el.Double("Length")
	require.NoError(t, err)
	assert.Equal(t, 0.5, l)

	n, err := el.Long("MaxOrder")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	b, err := el.DoubleArray("PolynomB")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.2}, b)
}

func TestRequiredFieldMissing(t *testing.T) {
	el := NewElement("QF", KindQuadrupole)

	_, err := el.Double("Length")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "QF", fe.Element)
	assert.Equal(t, "Length", fe.Field)
}

func TestWrongTypeField(t *testing.T) {
	el := NewElement("QF", KindQuadrupole).Set("Length", "half a meter")
	_, err := el.Double("Length")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestOptionalDefaults(t *testing.T) {
	el := NewElement("QF", KindQuadrupole)

	assert.Equal(t, 0, el.OptionalLong("FringeQuadEntrance", 0))
	assert.Equal(t, 7, el.OptionalLong("FringeQuadEntrance", 7))
	assert.Equal(t, 0.25, el.OptionalDouble("FullGap", 0.25))
	assert.Nil(t, el.OptionalDoubleArray("T1"))

	el.Set("T1", []float64{0, 0, 0, 0, 0, 0})
	assert.NotNil(t, el.OptionalDoubleArray("T1"))
}

func TestBuildQuadrupoleParams(t *testing.T) {
	p, err := BuildParams(NewQuadrupole("QF", 0.5, 1.2))
	require.NoError(t, err)

	assert.Equal(t, track.MethodStrMPole4, p.Method)
	assert.Equal(t, 0.5, p.Length)
	assert.Equal(t, []float64{0, 1.2}, p.PolynomB)
	assert.Equal(t, 1, p.MaxOrder)
	assert.Equal(t, DefaultIntSteps, p.NumIntSteps)
	assert.Nil(t, p.T1)
	assert.Nil(t, p.RAperture)
}

func TestBuildDriftNeedsOnlyLength(t *testing.T) {
	p, err := BuildParams(NewDrift("D1", 1.0))
	require.NoError(t, err)
	assert.Equal(t, track.MethodDrift, p.Method)
}

func TestBuildMissingRequiredField(t *testing.T) {
	el := NewElement("QX", KindQuadrupole).Set("Length", 0.5)
	_, err := BuildParams(el)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestBuildRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"short T1", "T1", []float64{1, 2, 3}},
		{"short R1", "R1", []float64{1, 2, 3, 4}},
		{"long aperture", "RAperture", []float64{1, 2, 3}},
		{"short fringe ints", "FringeIntM0", []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := NewQuadrupole("QF", 0.5, 1.2).Set(tt.field, tt.value)
			_, err := BuildParams(el)
			assert.Error(t, err)
		})
	}
}

func TestBuildDipole(t *testing.T) {
	p, err := BuildParams(NewRBend("B1", 2.0, 0.1, 0))
	require.NoError(t, err)
	assert.Equal(t, track.MethodBndMPole4, p.Method)
	assert.Equal(t, 0.1, p.BendingAngle)
	assert.Equal(t, 0.05, p.EntranceAngle)
	assert.Equal(t, 0.05, p.ExitAngle)
}

func TestBuildCorrectorFoldsKickAngle(t *testing.T) {
	el := NewCorrector("CH", 0.2, 1e-4, -2e-4)
	p, err := BuildParams(el)
	require.NoError(t, err)

	assert.Negative(t, p.PolynomB[0])
	assert.Negative(t, p.PolynomA[0])

	// the element's own arrays must stay untouched by the fold
	b, err := el.DoubleArray("PolynomB")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0}, b)
}

func TestBuildThinMultipole(t *testing.T) {
	p, err := BuildParams(NewThinMultipole("MS", []float64{0, 0, 0}, []float64{0, 0, 0.8}))
	require.NoError(t, err)
	assert.Equal(t, track.MethodThinMPole, p.Method)
	assert.Equal(t, 0.0, p.Length)
	assert.Equal(t, 2, p.MaxOrder)
}

func TestUnknownKind(t *testing.T) {
	el := NewElement("X", "wiggler").Set("Length", 1.0)
	_, err := BuildParams(el)
	assert.Error(t, err)
}

func TestCacheBuildsOnce(t *testing.T) {
	c := NewCache()
	el := NewQuadrupole("QF", 0.5, 1.2)

	p1, err := c.Params(el)
	require.NoError(t, err)
	p2, err := c.Params(el)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	el := NewQuadrupole("QF", 0.5, 1.2)

	p1, err := c.Params(el)
	require.NoError(t, err)

	el.Set("PolynomB", []float64{0, 2.4})
	c.Invalidate(el)

	p2, err := c.Params(el)
	require.NoError(t, err)
	assert.NotSame(t, p1, p2)
	assert.Equal(t, 2.4, p2.PolynomB[1])
}
