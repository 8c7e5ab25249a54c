// SPDX-License-Identifier: MIT
// Package matrix: spectral kernels for symmetric 3×3 input.
//
// Purpose:
//   - Eigen: cyclic Jacobi with max-pivot selection (deterministic).
//   - SqrtSPD: principal square root of a symmetric positive-definite matrix.
//   - Polar: right polar decomposition F = R·U built on SqrtSPD.

package matrix

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Defaults for the spectral kernels.
const (
	// DefaultEigenTol is the off-diagonal threshold (relative to ‖A‖_F, floored at 1).
	DefaultEigenTol = 1e-14

	// DefaultEigenMaxIter bounds the number of Jacobi rotations.
	DefaultEigenMaxIter = 100
)

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix using
// Jacobi rotations. Returns (values, Q) with A = Q·diag(values)·Qᵀ and the
// eigenvectors in the COLUMNS of Q.
//
// Implementation:
//   - Stage 1: ValidateTolerance, ValidateSymmetric; initialize Q = I.
//   - Stage 2: for iter < maxIter:
//   - find the pivot (p,q) maximizing |A[p,q]| over the strict upper triangle;
//   - stop when it drops below tol·max(1, ‖A‖_F);
//   - compute the rotation (c, s) that zeroes A[p,q] and apply Jᵀ·A·J;
//   - accumulate Q ← Q·J.
//   - Stage 3: final convergence check; extract the diagonal.
//
// Behavior highlights:
//   - Fixed pivot scan order (i↑, j↑) makes results bitwise reproducible.
//   - Stable for nearly-diagonal input (t computed with the smaller root).
//
// Errors:
//   - ErrBadTolerance, ErrNaNInf, ErrAsymmetry (validation).
//   - ErrEigenFailed if the sweep does not converge within maxIter.
//
// Complexity:
//   - Time O(maxIter), Space O(1).
func Eigen(m Mat3, tol float64, maxIter int) (Vec3, Mat3, error) {
	if err := ValidateTolerance(tol); err != nil {
		return Vec3{}, Mat3{}, matrixErrorf(opEigen, err)
	}
	threshold := tol * math.Max(1, FrobeniusNorm(m))
	if err := ValidateSymmetric(m, threshold); err != nil {
		return Vec3{}, Mat3{}, matrixErrorf(opEigen, err)
	}

	a := m
	q := Identity3()

	var (
		p, r        int     // current pivot indices
		maxOff, off float64 // max |A[p,r]| and a scan temporary
		theta, t    float64 // rotation parameters
		c, s        float64 // cosine and sine of the rotation angle
	)
	for iter := 0; iter < maxIter; iter++ {
		// J.1: find pivot
		maxOff = 0
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				off = math.Abs(a[i][j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}

		// J.2: converged
		if maxOff <= threshold {
			break
		}

		// J.3: θ = (a_rr − a_pp)/(2·a_pr); t = sign(θ)/(|θ|+√(θ²+1))
		app, arr, apr := a[p][p], a[r][r], a[p][r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: A ← Jᵀ·A·J, touching only rows/cols p and r
		for i := 0; i < 3; i++ {
			if i == p || i == r {
				continue
			}
			aip, air := a[i][p], a[i][r]
			a[i][p], a[p][i] = c*aip-s*air, c*aip-s*air
			a[i][r], a[r][i] = s*aip+c*air, s*aip+c*air
		}
		a[p][p] = c*c*app - 2*c*s*apr + s*s*arr
		a[r][r] = s*s*app + 2*c*s*apr + c*c*arr
		a[p][r], a[r][p] = 0, 0

		// J.5: Q ← Q·J
		for i := 0; i < 3; i++ {
			qip, qir := q[i][p], q[i][r]
			q[i][p] = c*qip - s*qir
			q[i][r] = s*qip + c*qir
		}
	}

	// Final convergence check.
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(a[i][j]) > threshold {
				return Vec3{}, Mat3{}, matrixErrorf(opEigen, ErrEigenFailed)
			}
		}
	}

	return Vec3{a[0][0], a[1][1], a[2][2]}, q, nil
}

// SqrtSPD returns the principal square root U of a symmetric
// positive-definite matrix C (U symmetric positive-definite, U·U = C).
//
// The root is assembled from the Jacobi eigenbasis, U = Q·diag(√λ)·Qᵀ,
// which is far better conditioned near the identity than Newton-type
// iterations on the raw matrix.
//
// Errors:
//   - Propagated Eigen errors.
//   - ErrNotPositiveDefinite if some λ ≤ tol·max(1, ‖C‖_F).
func SqrtSPD(c Mat3, tol float64) (Mat3, error) {
	vals, q, err := Eigen(c, tol, DefaultEigenMaxIter)
	if err != nil {
		return Mat3{}, matrixErrorf(opSqrtSPD, err)
	}
	floor := tol * math.Max(1, FrobeniusNorm(c))
	var root Vec3
	for k := 0; k < 3; k++ {
		if vals[k] <= floor {
			return Mat3{}, matrixErrorf(opSqrtSPD, errors.Wrapf(ErrNotPositiveDefinite, "eigenvalue %d = %g", k, vals[k]))
		}
		root[k] = math.Sqrt(vals[k])
	}

	var u Mat3
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += q[i][k] * root[k] * q[j][k]
			}
			u[i][j], u[j][i] = sum, sum
		}
	}
	return u, nil
}

// Polar computes the right polar decomposition F = R·U where U = √(FᵀF) is
// symmetric positive-definite and R = F·U⁻¹ is orthogonal. det(R) has the
// sign of det(F); callers that need a proper rotation must check det(F) > 0.
//
// Errors:
//   - ErrNaNInf for non-finite input.
//   - ErrSingular / ErrNotPositiveDefinite for a singular F.
func Polar(f Mat3) (r, u Mat3, err error) {
	if err = ValidateFinite(f); err != nil {
		return Mat3{}, Mat3{}, matrixErrorf(opPolar, err)
	}
	u, err = SqrtSPD(Mul(Transpose(f), f), DefaultEigenTol)
	if err != nil {
		return Mat3{}, Mat3{}, matrixErrorf(opPolar, err)
	}
	uInv, err := Inverse(u)
	if err != nil {
		return Mat3{}, Mat3{}, matrixErrorf(opPolar, err)
	}
	return Mul(f, uInv), u, nil
}
