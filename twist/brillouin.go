// SPDX-License-Identifier: MIT

package twist

import (
	"math"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// BringVectorsIntoVoronoi folds both columns of cols (in-plane vectors) into
// the first Voronoi (Wigner–Seitz) cell of lat.
//
// lat must be prismatic and aligned: a and b in the xy-plane and c along z,
// each within tol. Anything else means the caller built the reference
// lattice wrong, so the error is an ErrInvariantViolation assertion failure.
func BringVectorsIntoVoronoi(cols matrix.Mat2, lat xtal.Lattice, tol float64) (matrix.Mat2, error) {
	if err := requirePrismaticAligned(lat, tol); err != nil {
		return matrix.Mat2{}, err
	}
	var out matrix.Mat2
	for j := 0; j < 2; j++ {
		folded := lat.BringWithinWignerSeitz(cols.Col(j).Vec3())
		out = out.WithCol(j, folded.XY())
	}
	return out, nil
}

// IsWithinVoronoi reports whether the in-plane vector v already lies in the
// first Voronoi cell of lat, i.e. folding it moves it by at most tol.
func IsWithinVoronoi(v matrix.Vec2, lat xtal.Lattice, tol float64) bool {
	return lat.IsWithinWignerSeitz(v.Vec3(), tol)
}

func requirePrismaticAligned(lat xtal.Lattice, tol float64) error {
	a, b, c := lat.A(), lat.B(), lat.C()
	for _, x := range []float64{a[2], b[2], c[0], c[1]} {
		if math.Abs(x) > tol {
			return invariantf("Brillouin zone reference lattice is not prismatic and aligned\n%v", lat)
		}
	}
	return nil
}
