// SPDX-License-Identifier: MIT

// Package matrix: value types.
// This file contains ONLY the fixed-size types and their trivial accessors.
// Kernels live in impl_*.go files.
package matrix

import (
	"fmt"
	"math"
)

// Vec2 is a 2D real vector (in-plane component of a Vec3).
type Vec2 [2]float64

// Vec3 is a 3D real vector.
type Vec3 [3]float64

// Mat2 is a row-major 2×2 real matrix; m[i][j] is row i, column j.
type Mat2 [2][2]float64

// Mat3 is a row-major 3×3 real matrix; m[i][j] is row i, column j.
// Lattices store their basis vectors as the COLUMNS of a Mat3.
type Mat3 [3][3]float64

// IMat3 is a row-major 3×3 integer matrix (basis change between lattices).
type IMat3 [3][3]int

// ---------- Vec3 ----------

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v − w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns α·v.
func (v Vec3) Scale(alpha float64) Vec3 { return Vec3{alpha * v[0], alpha * v[1], alpha * v[2]} }

// Dot returns v·w.
func (v Vec3) Dot(w Vec3) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Cross returns v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length |v|.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v/|v|. The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// XY returns the in-plane (x, y) components.
func (v Vec3) XY() Vec2 { return Vec2{v[0], v[1]} }

// Vec3 lifts an in-plane vector to 3D with z = 0.
func (v Vec2) Vec3() Vec3 { return Vec3{v[0], v[1], 0} }

// ---------- Mat3 ----------

// Identity3 returns the 3×3 identity.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// FromColumns stacks a, b, c as the columns of a Mat3.
func FromColumns(a, b, c Vec3) Mat3 {
	return Mat3{
		{a[0], b[0], c[0]},
		{a[1], b[1], c[1]},
		{a[2], b[2], c[2]},
	}
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 { return Vec3{m[0][j], m[1][j], m[2][j]} }

// Row returns row i.
func (m Mat3) Row(i int) Vec3 { return Vec3{m[i][0], m[i][1], m[i][2]} }

// WithCol returns a copy of m whose column j is replaced by v.
func (m Mat3) WithCol(j int, v Vec3) Mat3 {
	m[0][j], m[1][j], m[2][j] = v[0], v[1], v[2]
	return m
}

// Block2 returns the upper-left 2×2 block (the ab-plane block of a lattice).
func (m Mat3) Block2() Mat2 {
	return Mat2{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}}
}

// WithBlock2 returns a copy of m whose upper-left 2×2 block is replaced by b.
func (m Mat3) WithBlock2(b Mat2) Mat3 {
	m[0][0], m[0][1] = b[0][0], b[0][1]
	m[1][0], m[1][1] = b[1][0], b[1][1]
	return m
}

// String renders the matrix one row per line with fixed precision.
func (m Mat3) String() string {
	return fmt.Sprintf("[%12.8f %12.8f %12.8f]\n[%12.8f %12.8f %12.8f]\n[%12.8f %12.8f %12.8f]",
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2])
}

// ---------- Mat2 ----------

// Col returns column j.
func (m Mat2) Col(j int) Vec2 { return Vec2{m[0][j], m[1][j]} }

// WithCol returns a copy of m whose column j is replaced by v.
func (m Mat2) WithCol(j int, v Vec2) Mat2 {
	m[0][j], m[1][j] = v[0], v[1]
	return m
}

// Det returns the determinant.
func (m Mat2) Det() float64 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }

// ---------- IMat3 ----------

// IdentityI3 returns the integer 3×3 identity.
func IdentityI3() IMat3 {
	return IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Float converts the integer matrix to a Mat3.
func (t IMat3) Float() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(t[i][j])
		}
	}
	return out
}

// Det returns the exact integer determinant.
func (t IMat3) Det() int {
	return t[0][0]*(t[1][1]*t[2][2]-t[1][2]*t[2][1]) -
		t[0][1]*(t[1][0]*t[2][2]-t[1][2]*t[2][0]) +
		t[0][2]*(t[1][0]*t[2][1]-t[1][1]*t[2][0])
}

// MulI returns the integer product t·u.
func (t IMat3) MulI(u IMat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0
			for k := 0; k < 3; k++ {
				s += t[i][k] * u[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}
