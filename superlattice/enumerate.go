// SPDX-License-Identifier: MIT

package superlattice

import (
	"github.com/cockroachdb/errors"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// Supercell is one enumerated superlattice of a base lattice.
type Supercell struct {
	// Size is |det Transform|, the number of base cells in the supercell.
	Size int

	// Transform is the integer matrix with base · Transform = Lattice.
	Transform matrix.IMat3

	// Lattice is the supercell itself.
	Lattice xtal.Lattice
}

// Enumerate returns every ab-plane supercell of base whose size lies in
// [minSize, maxSize], in deterministic order.
//
// Errors:
//   - ErrBadRange if minSize < 1 or maxSize < minSize.
//   - Lattice construction errors (only for a degenerate base).
//
// Complexity:
//   - Θ(Σ σ(m)) supercells for m in range, each O(1) to build and reduce.
func Enumerate(base xtal.Lattice, minSize, maxSize int) ([]Supercell, error) {
	if minSize < 1 || maxSize < minSize {
		return nil, errors.Wrapf(ErrBadRange, "[%d, %d]", minSize, maxSize)
	}

	var out []Supercell
	for m := minSize; m <= maxSize; m++ {
		for _, a := range Divisors(m) {
			d := m / a
			for b := 0; b < a; b++ {
				t := xtal.GaussReduceAB(base.ColumnMatrix(), matrix.IMat3{{a, b, 0}, {0, d, 0}, {0, 0, 1}}, 0)
				lat, err := base.Superlattice(t)
				if err != nil {
					return nil, errors.Wrapf(err, "size %d", m)
				}
				out = append(out, Supercell{Size: m, Transform: t, Lattice: lat})
			}
		}
	}
	return out, nil
}

// Count returns the number of supercells Enumerate yields for [minSize, maxSize].
func Count(minSize, maxSize int) int {
	n := 0
	for m := max(minSize, 1); m <= maxSize; m++ {
		for _, a := range Divisors(m) {
			n += a
		}
	}
	return n
}

// Divisors returns the positive divisors of n in ascending order.
func Divisors(n int) []int {
	var lo, hi []int
	for i := 1; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		lo = append(lo, i)
		if i != n/i {
			hi = append(hi, n/i)
		}
	}
	for i := len(hi) - 1; i >= 0; i-- {
		lo = append(lo, hi[i])
	}
	return lo
}
