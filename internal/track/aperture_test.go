package track

import (
	"math"
	"testing"

	"github.com/san-kum/beamline/internal/phase"
)

func TestRectangularAperture(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		lost bool
	}{
		{"inside", 1e-3, 1e-3, false},
		{"on x edge", 0.01, 0, false},
		{"outside x", 0.011, 0, true},
		{"outside y", 0, -0.006, true},
		{"corner inside", 0.01, 0.005, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := phase.Vector{tt.x, 0, tt.y, 0, 0, 0}
			checkRectAperture(r, []float64{0.01, 0.005})
			if r.Lost() != tt.lost {
				t.Errorf("lost = %v, want %v", r.Lost(), tt.lost)
			}
		})
	}
}

func TestEllipticalAperture(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		lost bool
	}{
		{"origin", 0, 0, false},
		{"inside", 5e-3, 2e-3, false},
		{"on boundary", 0.01, 0, false},
		{"outside", 0.009, 0.004, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := phase.Vector{tt.x, 0, tt.y, 0, 0, 0}
			checkEllipAperture(r, []float64{0.01, 0.005})
			if r.Lost() != tt.lost {
				t.Errorf("lost = %v, want %v", r.Lost(), tt.lost)
			}
		})
	}
}

func TestApertureRetestOfLostIsNoop(t *testing.T) {
	r := phase.Vector{math.NaN(), 1, 2, 3, 4, 5}
	checkRectAperture(r, []float64{1e-9, 1e-9})
	checkEllipAperture(r, []float64{1e-9, 1e-9})
	for i := 1; i < phase.Dim; i++ {
		if r[i] != float64(i) {
			t.Errorf("coord %d mutated: %v", i, r[i])
		}
	}
}

func TestLostParticleImmutability(t *testing.T) {
	p := quadParams(0.5, 1.2, 4)
	p.RAperture = []float64{1e-3, 1e-3}

	r := phase.Vector{5e-3, 0, 0, 0, 0, 0}
	b := phase.FromVectors(r)
	Track(b, p)

	v := b.At(0)
	if !v.Lost() {
		t.Fatal("particle should be lost at the entrance aperture")
	}
	frozen := make([]uint64, phase.Dim)
	for i := range frozen {
		frozen[i] = math.Float64bits(v[i])
	}

	other := quadParams(0.3, -2.0, 10)
	for i := 0; i < 1000; i++ {
		Track(b, p)
		Track(b, other)
	}
	for i := range frozen {
		if math.Float64bits(v[i]) != frozen[i] {
			t.Errorf("coord %d changed after loss: bits %x vs %x",
				i, math.Float64bits(v[i]), frozen[i])
		}
	}
}

func TestEntranceLossSkipsIntegration(t *testing.T) {
	p := quadParams(0.5, 1.2, 4)
	p.EAperture = []float64{1e-3, 1e-3}

	r := phase.Vector{2e-3, 7e-4, 0, 0, 0, 0}
	StrMPole4Pass(r, p)

	if !r.Lost() {
		t.Fatal("expected loss at entrance")
	}
	// momenta must be frozen at their entrance values
	if r[phase.PX] != 7e-4 {
		t.Errorf("px mutated after loss: %v", r[phase.PX])
	}
}
