// SPDX-License-Identifier: MIT

// Package xtal provides the two crystallographic primitives the Moiré engine
// is built on: an immutable Lattice and an atomic Structure.
//
// Lattice
//
//	A Lattice is three linearly independent vectors a, b, c stored as the
//	COLUMNS of a matrix.Mat3. Construction rejects singular or non-finite
//	input with ErrSingularLattice, so every Lattice value handed out by this
//	package is invertible. Reciprocal lattices follow the crystallographic
//	convention  L* = 2π·(L⁻¹)ᵀ , and Reciprocal is its own inverse.
//
//	Supported operations:
//	  • Reciprocal, Volume, Det, fractional ↔ cartesian conversion
//	  • Superlattice(T) = L·T for an integer transformation T
//	  • BringWithinWignerSeitz / IsWithinWignerSeitz (minimal-norm image)
//
// Structure
//
//	A Structure is a Lattice plus an ordered list of Sites (cartesian
//	coordinate + label). Structures are values: SetLattice, Superstructure
//	and Stack return new Structures and never mutate their inputs.
//
// Usage:
//
//	lat, err := xtal.NewLattice(
//		matrix.Vec3{1, 0, 0},
//		matrix.Vec3{0, 1, 0},
//		matrix.Vec3{0, 0, 5},
//	)
//	if err != nil { ... }
//	super, _ := lat.Superlattice(matrix.IMat3{{2, 0, 0}, {0, 2, 0}, {0, 0, 1}})
//	fmt.Println(super.Volume()) // 20
package xtal
