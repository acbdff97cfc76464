package phase

import "math"

// Coordinate indices into a 6-dimensional phase-space vector.
const (
	X     = 0 // horizontal position [m]
	PX    = 1 // horizontal momentum / p0
	Y     = 2 // vertical position [m]
	PY    = 3 // vertical momentum / p0
	Delta = 4 // relative momentum deviation
	CT    = 5 // time-like coordinate c*tau [m]
)

// Dim is the phase-space dimension.
const Dim = 6

// Vector is the state of one particle. It is a length-Dim view, usually
// into a Batch. A NaN in the X component marks the particle as lost;
// once set, the vector is never mutated again.
type Vector []float64

func NewVector() Vector {
	return make(Vector, Dim)
}

func (v Vector) Clone() Vector {
	c := make(Vector, Dim)
	copy(c, v)
	return c
}

// Lost reports whether the loss sentinel is set.
func (v Vector) Lost() bool {
	return math.IsNaN(v[X])
}

// MarkLost sets the loss sentinel. The remaining coordinates keep their
// last values so that post-mortem inspection still sees where the
// particle was when it hit the aperture.
func (v Vector) MarkLost() {
	v[X] = math.NaN()
}

func (v Vector) Valid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Batch is a contiguous array of particles, stride Dim. The caller owns
// the memory; tracking never resizes it.
type Batch []float64

func NewBatch(n int) Batch {
	return make(Batch, n*Dim)
}

// FromVectors packs particle vectors into a fresh contiguous batch.
func FromVectors(vs ...Vector) Batch {
	b := NewBatch(len(vs))
	for i, v := range vs {
		copy(b.At(i), v)
	}
	return b
}

func (b Batch) Count() int {
	return len(b) / Dim
}

// At returns particle i as a mutable view into the batch.
func (b Batch) At(i int) Vector {
	return Vector(b[i*Dim : (i+1)*Dim])
}

func (b Batch) Clone() Batch {
	c := make(Batch, len(b))
	copy(c, b)
	return c
}

// Survivors counts particles whose loss sentinel is not set.
func (b Batch) Survivors() int {
	n := 0
	for i := 0; i < b.Count(); i++ {
		if !b.At(i).Lost() {
			n++
		}
	}
	return n
}
