// SPDX-License-Identifier: MIT

package xtal

import (
	"math"

	"github.com/goirijo/casm-utilities-sub000/matrix"
)

// GaussReduceAB Gauss-reduces the first two columns of the integer transform
// t against the cartesian metric of basis and returns a transform for the
// same sublattice with det > 0. The third column of t is untouched.
//
// After reduction the cartesian columns u = basis·t₀, v = basis·t₁ satisfy
// |u|² ≤ |v|²·(1+tol) and |u·v| ≤ |u|²·(1/2+tol). A positive tol leaves
// bases that are reduced up to rounding as they are.
func GaussReduceAB(basis matrix.Mat3, t matrix.IMat3, tol float64) matrix.IMat3 {
	col := func(t matrix.IMat3, j int) matrix.Vec3 {
		return matrix.MulVec(basis, matrix.Vec3{float64(t[0][j]), float64(t[1][j]), float64(t[2][j])})
	}

	for {
		u, v := col(t, 0), col(t, 1)
		if u.Dot(u) > v.Dot(v)*(1+tol) {
			for i := 0; i < 3; i++ {
				t[i][0], t[i][1] = t[i][1], t[i][0]
			}
			u, v = v, u
		}
		ratio := u.Dot(v) / u.Dot(u)
		if math.Abs(ratio) <= 0.5+tol {
			break
		}
		q := int(math.Round(ratio))
		for i := 0; i < 3; i++ {
			t[i][1] -= q * t[i][0]
		}
	}

	if t.Det() < 0 {
		for i := 0; i < 3; i++ {
			t[i][1] = -t[i][1]
		}
	}
	return t
}

// reducedBasis returns a basis of the same lattice with a and b Gauss-reduced
// and c shifted by the in-plane lattice vector nearest to its projection.
func (l Lattice) reducedBasis() matrix.Mat3 {
	u := GaussReduceAB(l.m, matrix.IdentityI3(), wignerSeitzRelTol)
	r := matrix.Mul(l.m, u.Float())

	a, b, c := r.Col(0), r.Col(1), r.Col(2)
	gram := matrix.Mat2{{a.Dot(a), a.Dot(b)}, {a.Dot(b), b.Dot(b)}}
	ginv, err := matrix.Inverse2(gram)
	if err != nil {
		return r
	}
	x := [2]float64{
		ginv[0][0]*a.Dot(c) + ginv[0][1]*b.Dot(c),
		ginv[1][0]*a.Dot(c) + ginv[1][1]*b.Dot(c),
	}
	shift := matrix.IMat3{
		{1, 0, -int(math.Round(x[0]))},
		{0, 1, -int(math.Round(x[1]))},
		{0, 0, 1},
	}
	return matrix.Mul(l.m, u.MulI(shift).Float())
}
