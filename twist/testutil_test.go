// SPDX-License-Identifier: MIT
package twist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

const tol = 1e-10

// sqrt3Angle twists graphene into a coincident √3×√3 supercell of its Moiré lattice.
const sqrt3Angle = 15.178178937949879

func lattice(t testing.TB, a, b, c matrix.Vec3) xtal.Lattice {
	t.Helper()
	lat, err := xtal.NewLattice(a, b, c)
	require.NoError(t, err)
	return lat
}

func squareLattice(t testing.TB) xtal.Lattice {
	return lattice(t, matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 1, 0}, matrix.Vec3{0, 0, 5})
}

func grapheneLattice(t testing.TB) xtal.Lattice {
	return lattice(t,
		matrix.Vec3{2.4684159756, 0, 0},
		matrix.Vec3{-1.2342079878, 2.1377109420, 0},
		matrix.Vec3{0, 0, 9.9990577698},
	)
}

func grapheneSlab(t testing.TB) xtal.Structure {
	lat := grapheneLattice(t)
	return xtal.NewStructure(lat, []xtal.Site{
		{Coord: lat.CartCoords(matrix.Vec3{0, 0, 0.5}), Label: "C"},
		{Coord: lat.CartCoords(matrix.Vec3{2.0 / 3, 1.0 / 3, 0.5}), Label: "C"},
	})
}

// generalLattices are right-handed lattices whose ab-plane is not the xy-plane
// or whose c is slanted.
func generalLattices(t testing.TB) []xtal.Lattice {
	return []xtal.Lattice{
		lattice(t, matrix.Vec3{3, 0, 0}, matrix.Vec3{0, 4, 0}, matrix.Vec3{0, 0, 8}),
		lattice(t, matrix.Vec3{3, 1, 0.5}, matrix.Vec3{-1, 4, 0.2}, matrix.Vec3{0.3, 0.2, 8}),
		lattice(t, matrix.Vec3{0, 4, 0}, matrix.Vec3{0, 0, 6}, matrix.Vec3{9, 0, 0}),
		lattice(t, matrix.Vec3{2, 2, 1}, matrix.Vec3{-1, 3, 0}, matrix.Vec3{1, -1, 7}),
	}
}

// signedDegrees returns the angle from v to w about n, in degrees.
func signedDegrees(v, w, n matrix.Vec3) float64 {
	return math.Atan2(v.Cross(w).Dot(n.Normalized()), v.Dot(w)) * 180 / math.Pi
}

func identityDeviation(m matrix.Mat3) float64 {
	var worst float64
	id := matrix.Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			worst = math.Max(worst, math.Abs(m[i][j]-id[i][j]))
		}
	}
	return worst
}
