// SPDX-License-Identifier: MIT

package xtal

import "github.com/cockroachdb/errors"

// Sentinel errors for lattice and structure operations.
var (
	// ErrSingularLattice indicates the three basis vectors are not linearly
	// independent (or contain NaN/Inf).
	ErrSingularLattice = errors.New("xtal: singular lattice")

	// ErrSingularTransform indicates an integer transformation with det = 0.
	ErrSingularTransform = errors.New("xtal: singular transformation matrix")

	// ErrEmptyStack indicates Stack was called without any layer.
	ErrEmptyStack = errors.New("xtal: nothing to stack")

	// ErrTranslationCount indicates the translations found inside a supercell
	// do not match |det T|; the transformation is not integral.
	ErrTranslationCount = errors.New("xtal: supercell translation count mismatch")
)
