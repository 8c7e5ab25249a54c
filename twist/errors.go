// SPDX-License-Identifier: MIT

package twist

import "github.com/cockroachdb/errors"

// Sentinel errors for the Moiré engine.
var (
	// ErrGeometry indicates unusable input geometry: a singular or
	// left-handed lattice, or a singular superlattice during approximation.
	ErrGeometry = errors.New("twist: invalid lattice geometry")

	// ErrInvariantViolation indicates an internal construction invariant did
	// not hold. Errors wrapping it are also assertion failures
	// (errors.IsAssertionFailure) and point at a bug, never at bad input.
	ErrInvariantViolation = errors.New("twist: invariant violation")

	// ErrNonPlanarDeformation indicates a deformation gradient with
	// out-of-plane strain; the strain metrics are defined for the ab-plane only.
	ErrNonPlanarDeformation = errors.New("twist: deformation is not planar")
)

// invariantf builds an ErrInvariantViolation marked as an assertion failure.
func invariantf(format string, args ...interface{}) error {
	return errors.WithAssertionFailure(errors.Wrapf(ErrInvariantViolation, format, args...))
}

// geometryf wraps cause (which may be nil) as an ErrGeometry.
func geometryf(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return errors.Wrapf(ErrGeometry, format, args...)
	}
	return errors.Wrapf(errors.Mark(cause, ErrGeometry), format, args...)
}
