// SPDX-License-Identifier: MIT

// Package superlattice enumerates the in-plane supercells of a layered
// lattice.
//
// For a volume multiplier m every sublattice of index m in the ab-plane is
// produced exactly once, from its Hermite normal form
//
//	    ⎡ a  b  0 ⎤
//	T = ⎢ 0  d  0 ⎥ ,  a·d = m,  0 ≤ b < a
//	    ⎣ 0  0  1 ⎦
//
// so there are σ(m) (the sum of the divisors of m) supercells per size.
// The c vector is never touched. Each supercell's ab basis is then
// Gauss-reduced with xtal.GaussReduceAB (|a| ≤ |b|, |a·b| ≤ |a|²/2) and
// b is negated when needed so that det T > 0. The reported Transform
// always satisfies base · Transform = supercell.
//
// No symmetry deduplication is performed: supercells that are equivalent
// under the point group of the base lattice are all returned.
//
// Ordering is deterministic: size ascending, then a ascending, then b
// ascending.
package superlattice
