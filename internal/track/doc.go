// Package track implements the symplectic particle-tracking kernel for
// accelerator lattice elements.
//
// A pass method advances one 6-dimensional phase-space vector through
// one element using a 4th-order symmetric drift-kick splitting:
//
//   - [StrMPole4Pass]: straight multipole magnets (quadrupoles,
//     sextupoles, octupoles, combined-function straight elements)
//   - [BndMPole4Pass]: bending magnets with multipole components
//   - [ExactMPole4Pass]: straight multipoles on the exact drift map
//   - [DriftPass], [ThinMPolePass]: field-free gaps and thin kicks
//
// [Track] iterates a pass over a contiguous particle batch, skipping
// particles whose loss sentinel (NaN in the first coordinate) is set.
// [Params] is the immutable per-element configuration; it is built by
// the lattice layer, cached by the caller and shared read-only across
// particles and turns.
//
// # Thread safety
//
// The read path takes no locks: a Params may serve concurrent Track
// calls as long as the batches are disjoint. [TrackParallel] exploits
// the independence of particles within one element call.
package track
