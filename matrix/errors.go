// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels wrapped with an operation tag and
// tests check them via errors.Is. No kernel panics on input-triggered errors.

package matrix

import "github.com/cockroachdb/errors"

// Every message is prefixed with "matrix: ..." so that wrapped chains stay
// greppable in logs. Wrap at the call-site with matrixErrorf(op, ErrX).

var (
	// ErrSingular is returned when a matrix that must be inverted has a
	// determinant that vanishes relative to the size of its entries.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the supplied tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNotPositiveDefinite signals a negative eigenvalue where a symmetric
	// positive-definite matrix was required (square root, polar decomposition).
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrEigenFailed indicates that the Jacobi sweep did not converge under
	// the given tolerance/iteration budget.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrBadTolerance indicates a negative, NaN or infinite tolerance argument.
	ErrBadTolerance = errors.New("matrix: tolerance must be finite and non-negative")
)
