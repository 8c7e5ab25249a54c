// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the numeric guards
//    shared by the kernels (finite entries, sane tolerance, symmetry).
//  - Return sentinels tagged with the validator name so call sites can wrap
//    them uniformly with the operation tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"math"

	"github.com/cockroachdb/errors"
)

// validatorErrorf wraps an underlying sentinel with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}

// ValidateTolerance ensures tol is finite and non-negative.
// Complexity: O(1).
func ValidateTolerance(tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return validatorErrorf("ValidateTolerance", ErrBadTolerance)
	}
	return nil
}

// ValidateFinite ensures every entry of m is finite.
// Complexity: O(9).
func ValidateFinite(m Mat3) error {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}
	return nil
}

// ValidateSymmetric checks |m[i][j] − m[j][i]| ≤ tol for all i<j.
//
// Returns ErrBadTolerance on an unusable tol, ErrNaNInf on non-finite
// entries, ErrAsymmetry on violation.
// Complexity: O(9).
func ValidateSymmetric(m Mat3, tol float64) error {
	if err := ValidateTolerance(tol); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if err := ValidateFinite(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	// Scan the strict upper triangle once in fixed i→j order.
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m[i][j]-m[j][i]) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}
	return nil
}
