package track

import "github.com/san-kum/beamline/internal/phase"

// translate adds a 6-vector offset in place. Callers skip the call
// entirely when no misalignment is configured; an absent transform is
// never applied as a neutral one.
func translate(r phase.Vector, t []float64) {
	for i := 0; i < phase.Dim; i++ {
		r[i] += t[i]
	}
}

func translateNeg(r phase.Vector, t []float64) {
	for i := 0; i < phase.Dim; i++ {
		r[i] -= t[i]
	}
}

// linearMap multiplies by a dense 6x6 matrix stored row-major.
func linearMap(r phase.Vector, m []float64) {
	var out [phase.Dim]float64
	for i := 0; i < phase.Dim; i++ {
		row := m[i*phase.Dim : (i+1)*phase.Dim]
		s := 0.0
		for j := 0; j < phase.Dim; j++ {
			s += row[j] * r[j]
		}
		out[i] = s
	}
	copy(r, out[:])
}
