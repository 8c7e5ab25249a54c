// SPDX-License-Identifier: MIT

package xtal

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/goirijo/casm-utilities-sub000/matrix"
)

// wignerSeitzWindow is the half-width of the translation search box around
// round(R⁻¹v) in the reduced basis R used by BringWithinWignerSeitz.
const wignerSeitzWindow = 2

// wignerSeitzRelTol is the relative squared-norm margin a translated image
// must beat to replace the current best; ties keep the earlier image.
const wignerSeitzRelTol = 1e-12

// Lattice is an immutable, invertible basis with vectors a, b, c as columns.
// The zero value is not a valid lattice; use NewLattice or FromColumnMatrix.
type Lattice struct {
	m   matrix.Mat3
	inv matrix.Mat3
}

// NewLattice builds a lattice from its three basis vectors.
func NewLattice(a, b, c matrix.Vec3) (Lattice, error) {
	return FromColumnMatrix(matrix.FromColumns(a, b, c))
}

// FromColumnMatrix builds a lattice whose basis vectors are the columns of m.
//
// Errors:
//   - ErrSingularLattice if m is singular or has non-finite entries.
func FromColumnMatrix(m matrix.Mat3) (Lattice, error) {
	inv, err := matrix.Inverse(m)
	if err != nil {
		return Lattice{}, errors.Wrapf(errors.Mark(err, ErrSingularLattice), "lattice\n%v", m)
	}
	return Lattice{m: m, inv: inv}, nil
}

// A returns the first basis vector.
func (l Lattice) A() matrix.Vec3 { return l.m.Col(0) }

// B returns the second basis vector.
func (l Lattice) B() matrix.Vec3 { return l.m.Col(1) }

// C returns the third basis vector.
func (l Lattice) C() matrix.Vec3 { return l.m.Col(2) }

// ColumnMatrix returns the basis vectors as the columns of a matrix.
func (l Lattice) ColumnMatrix() matrix.Mat3 { return l.m }

// InverseMatrix returns L⁻¹ (maps cartesian to fractional coordinates).
func (l Lattice) InverseMatrix() matrix.Mat3 { return l.inv }

// Det returns the signed determinant; negative for left-handed bases.
func (l Lattice) Det() float64 { return matrix.Det(l.m) }

// Volume returns |det L|.
func (l Lattice) Volume() float64 { return math.Abs(l.Det()) }

// Reciprocal returns 2π·(L⁻¹)ᵀ. Reciprocal().Reciprocal() reproduces l.
func (l Lattice) Reciprocal() Lattice {
	return Lattice{
		m:   matrix.Scale(matrix.Transpose(l.inv), 2*math.Pi),
		inv: matrix.Scale(matrix.Transpose(l.m), 1/(2*math.Pi)),
	}
}

// FracCoords converts a cartesian vector to fractional coordinates.
func (l Lattice) FracCoords(cart matrix.Vec3) matrix.Vec3 { return matrix.MulVec(l.inv, cart) }

// CartCoords converts fractional coordinates to a cartesian vector.
func (l Lattice) CartCoords(frac matrix.Vec3) matrix.Vec3 { return matrix.MulVec(l.m, frac) }

// Superlattice returns the lattice L·T.
//
// Errors:
//   - ErrSingularTransform if det T = 0.
func (l Lattice) Superlattice(t matrix.IMat3) (Lattice, error) {
	if t.Det() == 0 {
		return Lattice{}, errors.Wrapf(ErrSingularTransform, "transformation %v", t)
	}
	return FromColumnMatrix(matrix.Mul(l.m, t.Float()))
}

// BringWithinWignerSeitz returns the lattice-equivalent image of v with the
// smallest norm, i.e. v folded into the Wigner–Seitz cell around the origin.
// The result does not depend on which basis of the lattice l was built from.
//
// Implementation:
//   - Stage 1: reduce the basis (Gauss reduction of a, b; c shifted by the
//     nearest in-plane lattice vector).
//   - Stage 2: n₀ = round(R⁻¹v) in the reduced basis R.
//   - Stage 3: scan n₀ + k for k ∈ [−2, 2]³ in fixed order and keep the
//     image v − R·n with the smallest norm.
//
// Behavior highlights:
//   - v itself is the first candidate and is only replaced by a strictly
//     shorter image, so points on the cell boundary are fixed points.
func (l Lattice) BringWithinWignerSeitz(v matrix.Vec3) matrix.Vec3 {
	r := l.reducedBasis()
	rinv, err := matrix.Inverse(r)
	if err != nil {
		r, rinv = l.m, l.inv
	}

	n0 := matrix.MulVec(rinv, v)
	best, best2 := v, v.Dot(v)
	for i := -wignerSeitzWindow; i <= wignerSeitzWindow; i++ {
		for j := -wignerSeitzWindow; j <= wignerSeitzWindow; j++ {
			for k := -wignerSeitzWindow; k <= wignerSeitzWindow; k++ {
				n := matrix.Vec3{
					math.Round(n0[0]) + float64(i),
					math.Round(n0[1]) + float64(j),
					math.Round(n0[2]) + float64(k),
				}
				img := v.Sub(matrix.MulVec(r, n))
				if d2 := img.Dot(img); d2 < best2*(1-wignerSeitzRelTol) {
					best, best2 = img, d2
				}
			}
		}
	}
	return best
}

// IsWithinWignerSeitz reports whether folding v is a no-op within tol.
func (l Lattice) IsWithinWignerSeitz(v matrix.Vec3, tol float64) bool {
	return matrix.VecAlmostEqual(l.BringWithinWignerSeitz(v), v, tol)
}

// AlmostEqual reports whether both bases agree entrywise within tol.
func (l Lattice) AlmostEqual(other Lattice, tol float64) bool {
	return matrix.AlmostEqual(l.m, other.m, tol)
}

// String renders the column matrix.
func (l Lattice) String() string { return l.m.String() }
