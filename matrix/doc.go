// SPDX-License-Identifier: MIT

// Package matrix provides fixed-size linear algebra for crystallographic work.
//
// The package provides:
//
//   - Vec3 / Mat3 value types (row-major, columns are lattice vectors by
//     convention of the callers) and their 2D counterparts Vec2 / Mat2.
//   - IMat3, an integer 3×3 matrix for basis changes between lattices.
//   - Kernels: products, determinant, adjugate inverse, elementwise rounding.
//   - Spectral kernels for symmetric input: cyclic Jacobi eigen-decomposition,
//     square root of a symmetric positive-definite matrix, and the right polar
//     decomposition F = R·U.
//
// All types are plain arrays and are copied by value, so no function in this
// package mutates its arguments. Kernels that can fail (singular input,
// non-finite values, non-convergence) return package sentinels wrapped with an
// operation tag; callers match them with errors.Is.
//
// Quick example:
//
//	L := matrix.FromColumns(matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 1, 0}, matrix.Vec3{0, 0, 5})
//	inv, err := matrix.Inverse(L)
//	if err != nil {
//		// errors.Is(err, matrix.ErrSingular)
//	}
//	_ = matrix.Mul(L, inv) // ≈ identity
package matrix
