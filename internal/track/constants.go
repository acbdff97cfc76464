package track

// Coefficients of the 4th-order symmetric drift-kick splitting
// (Forest & Ruth). Every pass method shares this single definition;
// the values are reproduced bit-for-bit from the reference integrators
// because long-term tracking stability depends on the exact composition.
const (
	drift1 = 0.6756035959798286638
	drift2 = -0.1756035959798286639
	kick1  = 1.351207191959657328
	kick2  = -1.702414383919314656
)
