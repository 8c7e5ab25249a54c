// SPDX-License-Identifier: MIT
// Package matrix: fixed-size linear-algebra kernels.
//
// Purpose:
//   - Canonical 3×3 kernels used by lattice code: products, transpose,
//     determinant, adjugate inverse, elementwise rounding and comparisons.
//
// Notes:
//   - Every kernel takes and returns values; nothing is mutated in place.
//   - Only Inverse can fail; its failure is wrapped with the opInverse tag.

package matrix

import (
	"math"

	"github.com/cockroachdb/errors"
)

// SingularRelTol is the relative threshold under which Inverse declares a
// matrix singular: |det| ≤ SingularRelTol · ‖row0‖‖row1‖‖row2‖ (the
// Hadamard bound of |det|). Scale-free, so tiny and huge cells are treated
// alike.
const SingularRelTol = 1e-12

// Operation name constants for unified error wrapping.
const (
	opInverse  = "Inverse"
	opInverse2 = "Inverse2"
	opEigen    = "Eigen"
	opSqrtSPD  = "SqrtSPD"
	opPolar    = "Polar"
)

// matrixErrorf wraps err with an operation tag, preserving the original error
// for errors.Is. Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}

// Mul returns the product a·b.
// Complexity: O(27).
func Mul(a, b Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return out
}

// MulVec returns m·v.
func MulVec(m Mat3, v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Add returns a + b elementwise.
func Add(a, b Mat3) Mat3 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] += b[i][j]
		}
	}
	return a
}

// Sub returns a − b elementwise.
func Sub(a, b Mat3) Mat3 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] -= b[i][j]
		}
	}
	return a
}

// Scale returns α·m.
func Scale(m Mat3, alpha float64) Mat3 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] *= alpha
		}
	}
	return m
}

// Transpose returns mᵀ.
func Transpose(m Mat3) Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Det returns the determinant by cofactor expansion along row 0.
func Det(m Mat3) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// FrobeniusNorm returns √(Σ m_ij²).
func FrobeniusNorm(m Mat3) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += m[i][j] * m[i][j]
		}
	}
	return math.Sqrt(s)
}

// Inverse computes m⁻¹ through the adjugate: m⁻¹ = adj(m)/det(m).
//
// Implementation:
//   - Stage 1: reject non-finite entries (ErrNaNInf).
//   - Stage 2: compute det and compare it to the Hadamard bound scaled by
//     SingularRelTol (ErrSingular).
//   - Stage 3: write the transposed cofactors divided by det.
//
// Behavior highlights:
//   - Closed form, no pivoting decisions: permutation-like lattices (zero
//     leading entries) invert exactly as well as diagonal ones.
//
// Errors:
//   - ErrNaNInf, ErrSingular wrapped with opInverse.
//
// Complexity:
//   - Time O(1) (fixed 3×3), Space O(1).
func Inverse(m Mat3) (Mat3, error) {
	if err := ValidateFinite(m); err != nil {
		return Mat3{}, matrixErrorf(opInverse, err)
	}

	det := Det(m)
	bound := m.Row(0).Norm() * m.Row(1).Norm() * m.Row(2).Norm()
	if bound == 0 || math.Abs(det) <= SingularRelTol*bound {
		return Mat3{}, matrixErrorf(opInverse, ErrSingular)
	}

	inv := Mat3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}

	return Scale(inv, 1/det), nil
}

// Inverse2 computes the inverse of a 2×2 matrix.
// Errors: ErrSingular wrapped with opInverse2.
func Inverse2(m Mat2) (Mat2, error) {
	det := m.Det()
	bound := math.Hypot(m[0][0], m[0][1]) * math.Hypot(m[1][0], m[1][1])
	if bound == 0 || math.Abs(det) <= SingularRelTol*bound {
		return Mat2{}, matrixErrorf(opInverse2, ErrSingular)
	}
	return Mat2{
		{m[1][1] / det, -m[0][1] / det},
		{-m[1][0] / det, m[0][0] / det},
	}, nil
}

// Round rounds every entry to the nearest integer (half away from zero).
func Round(m Mat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = int(math.Round(m[i][j]))
		}
	}
	return out
}

// RotationZ returns the right-handed rotation by rad radians about +z.
func RotationZ(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// AlmostEqual reports whether |a_ij − b_ij| ≤ tol for every entry.
func AlmostEqual(a, b Mat3, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// VecAlmostEqual reports whether |v_i − w_i| ≤ tol for every component.
func VecAlmostEqual(v, w Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(v[i]-w[i]) > tol {
			return false
		}
	}
	return true
}
