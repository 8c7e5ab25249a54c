// SPDX-License-Identifier: MIT

// Package twist builds finite periodic approximants of the Moiré superlattice
// formed by a 2D layer stacked on a copy of itself twisted by an arbitrary
// angle, and reports the strain needed to force that periodicity.
//
// 🚀 Pipeline
//
//	MoireLattice        exact geometry: aligned/rotated layers, reciprocal
//	                    difference folded into each Brillouin zone, the two
//	                    raw Moiré lattices and their overlap flags
//	MoireApproximant    integer fits of both layers onto a Moiré cell, the
//	                    averaged commensurate cell S̄ and the deformations F_X
//	MoireApproximator   budgeted search over supercells of the Moiré lattice
//	                    for the approximant with the smallest strain
//	DeformationReport   F = R·U, rotation angle, dilation/deviatoric strain
//	MoireStructureApproximator
//	                    lifts the chosen approximant to atomic layers and
//	                    stacks them into a bilayer
//
// Zones and layers
//
//	Both are tagged by Aligned / Rotated and every per-zone or per-layer
//	field is a [2]-array indexed by the tag. The zone names the Brillouin
//	zone the reciprocal difference was folded into; the two zones give
//	equivalent but differently shaped Moiré cells.
//
// ⚙️ Usage:
//
//	lat, _ := xtal.NewLattice(a, b, c)
//	search, err := twist.NewMoireApproximator(lat, 1.05, 2000,
//		twist.WithLogger(logger),
//	)
//	if err != nil { ... }
//	report := search.BestSmallest(twist.Aligned, twist.Rotated, 1e-8)
//	def, _ := report.Deformation()
//	fmt.Println(report.Error, def.RotationAngle, def.DeviatoricStrain)
//
//	// more budget, never a worse answer
//	_ = search.Expand(10000)
//
// Errors:
//
//	ErrGeometry             singular or left-handed input, singular fits.
//	ErrInvariantViolation   internal assertion; also errors.IsAssertionFailure.
//	ErrNonPlanarDeformation out-of-plane strain in a deformation report.
//
// A budget too small for any supercell is not an error: the size-1
// approximant is kept and its error is visible in every report.
//
// Concurrency:
//
//	Expand evaluates candidates on a bounded errgroup and reduces them in
//	enumeration order, so results are identical for any WithWorkers value.
//	A MoireApproximator is not safe for concurrent Expand calls.
package twist
