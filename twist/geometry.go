// SPDX-License-Identifier: MIT

package twist

import (
	"math"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// SlabUnitVectors returns the orthonormal frame spanned by a lattice's
// ab-plane as the columns of a matrix: x̂ along a, ẑ along a×b, ŷ = ẑ×x̂.
// Multiplying by it maps the standard frame onto the slab frame.
func SlabUnitVectors(lat xtal.Lattice) matrix.Mat3 {
	x := lat.A().Normalized()
	z := lat.A().Cross(lat.B()).Normalized()
	y := z.Cross(x)
	return matrix.FromColumns(x, y, z)
}

// MakeAlignedLattice rotates lat rigidly so that a points along +x and b lies
// in the xy-plane with positive y. Lengths and angles are preserved.
//
// Errors:
//   - ErrGeometry for a left-handed lattice (det < 0): the twist direction
//     would be ambiguous.
func MakeAlignedLattice(lat xtal.Lattice) (xtal.Lattice, error) {
	if lat.Det() < 0 {
		return xtal.Lattice{}, geometryf(nil, "left-handed lattice (det = %g)", lat.Det())
	}
	frame := SlabUnitVectors(lat)
	aligned, err := xtal.FromColumnMatrix(matrix.Mul(matrix.Transpose(frame), lat.ColumnMatrix()))
	if err != nil {
		return xtal.Lattice{}, geometryf(err, "align lattice")
	}
	return aligned, nil
}

// MakePrismaticLattice replaces c with its projection on the ab normal.
// Periodicity along c changes, the slab thickness does not.
func MakePrismaticLattice(lat xtal.Lattice) (xtal.Lattice, error) {
	n := lat.A().Cross(lat.B()).Normalized()
	prismatic, err := xtal.NewLattice(lat.A(), lat.B(), n.Scale(lat.C().Dot(n)))
	if err != nil {
		return xtal.Lattice{}, geometryf(err, "prismatic lattice")
	}
	return prismatic, nil
}

// MakeTwistRotationMatrix returns the proper rotation by degrees about the
// ab normal of lat, acting on column vectors: F·Rz(θ)·Fᵀ with F the slab frame.
func MakeTwistRotationMatrix(lat xtal.Lattice, degrees float64) matrix.Mat3 {
	frame := SlabUnitVectors(lat)
	rz := matrix.RotationZ(degrees * math.Pi / 180)
	return matrix.Mul(matrix.Mul(frame, rz), matrix.Transpose(frame))
}

// MakeTwistedLattice rotates lat by degrees about its ab normal.
func MakeTwistedLattice(lat xtal.Lattice, degrees float64) (xtal.Lattice, error) {
	rot := MakeTwistRotationMatrix(lat, degrees)
	twisted, err := xtal.FromColumnMatrix(matrix.Mul(rot, lat.ColumnMatrix()))
	if err != nil {
		return xtal.Lattice{}, geometryf(err, "twist lattice by %g°", degrees)
	}
	return twisted, nil
}

// MakeMoireLatticeFromReciprocalDifference turns in-plane reciprocal Moiré
// vectors (columns of diff) into a real-space Moiré lattice whose c vector
// is realC. The result is right-handed: a and b are swapped if needed.
//
// Errors:
//   - ErrGeometry if diff is singular (an infinite Moiré lattice).
func MakeMoireLatticeFromReciprocalDifference(diff matrix.Mat2, realC matrix.Vec3) (xtal.Lattice, error) {
	phony, err := xtal.FromColumnMatrix(matrix.Identity3().WithBlock2(diff))
	if err != nil {
		return xtal.Lattice{}, geometryf(err, "null reciprocal Moiré lattice (infinite Moiré lattice)")
	}
	m := phony.Reciprocal().ColumnMatrix().WithCol(2, realC)
	if matrix.Det(m) < 0 {
		a, b := m.Col(0), m.Col(1)
		m = m.WithCol(0, b).WithCol(1, a)
	}
	moire, err := xtal.FromColumnMatrix(m)
	if err != nil {
		return xtal.Lattice{}, geometryf(err, "Moiré lattice")
	}
	return moire, nil
}

// MoireLattice is the exact (generally incommensurate) Moiré geometry of a
// lattice twisted against itself. Every field is derived at construction
// and never changes afterwards. Per-layer and per-zone values are indexed by
// Aligned / Rotated.
type MoireLattice struct {
	// InputLattice and InputDegrees are the construction arguments.
	InputLattice xtal.Lattice
	InputDegrees float64

	// AlignedLattice is the input, aligned and made prismatic.
	AlignedLattice xtal.Lattice
	// RotatedLattice is AlignedLattice twisted by InputDegrees.
	RotatedLattice xtal.Lattice

	// ReciprocalLattices holds the reciprocal of each layer.
	ReciprocalLattices [2]xtal.Lattice

	// FullReciprocalDifference is the ab-block of rotated* − aligned*.
	FullReciprocalDifference matrix.Mat2

	// BrillouinZoneReciprocalDifference holds a Gauss-reduced basis of
	// FullReciprocalDifference with both columns folded into the Brillouin
	// zone of each layer.
	BrillouinZoneReciprocalDifference [2]matrix.Mat2

	// MoireLattices holds the real-space Moiré lattice built from each zone.
	MoireLattices [2]xtal.Lattice

	// Degenerate marks zones whose folded difference was null; their Moiré
	// lattice is the layer cell itself.
	Degenerate [2]bool

	// IsWithinBrillouinZoneOverlap[z][i] reports whether the i-th folded
	// reciprocal Moiré vector of zone z also lies in the Brillouin zone of
	// the other layer.
	IsWithinBrillouinZoneOverlap [2][2]bool
}

// NewMoireLattice builds the Moiré geometry of lat twisted by degrees.
//
// Implementation:
//   - Stage 1: align lat and make it prismatic; twist it for the rotated layer.
//   - Stage 2: reciprocal difference rotated* − aligned*; its c column and z
//     row must vanish.
//   - Stage 3: fold the difference into each layer's Brillouin zone and
//     rebuild a real Moiré lattice per zone (c taken from the aligned layer).
//   - Stage 4: overlap flags, checking each zone's vectors against the
//     other layer's Brillouin zone.
//
// Behavior highlights:
//   - A twist that maps the layer onto itself (0°, 60° hexagonal, 90°
//     square …) folds the difference to zero. That zone's Moiré lattice is
//     then the layer's own cell, marked in Degenerate.
//
// Errors:
//   - ErrGeometry for a singular or left-handed lat.
//   - ErrInvariantViolation (assertion failure) if a construction
//     invariant does not hold.
func NewMoireLattice(lat xtal.Lattice, degrees float64, opts ...Option) (MoireLattice, error) {
	o := gatherOptions(opts...)
	return newMoireLattice(lat, degrees, o)
}

func newMoireLattice(lat xtal.Lattice, degrees float64, o Options) (MoireLattice, error) {
	ml := MoireLattice{InputLattice: lat, InputDegrees: degrees}

	aligned, err := MakeAlignedLattice(lat)
	if err != nil {
		return MoireLattice{}, err
	}
	if ml.AlignedLattice, err = MakePrismaticLattice(aligned); err != nil {
		return MoireLattice{}, err
	}
	if ml.RotatedLattice, err = MakeTwistedLattice(ml.AlignedLattice, degrees); err != nil {
		return MoireLattice{}, err
	}
	for _, l := range Layers {
		ml.ReciprocalLattices[l] = ml.Real(l).Reciprocal()
	}

	diff := matrix.Sub(ml.ReciprocalLattices[Rotated].ColumnMatrix(), ml.ReciprocalLattices[Aligned].ColumnMatrix())
	if !matrix.VecAlmostEqual(diff.Col(2), matrix.Vec3{}, o.invariantTol) ||
		!matrix.VecAlmostEqual(diff.Row(2), matrix.Vec3{}, o.invariantTol) {
		return MoireLattice{}, invariantf("reciprocal difference has out-of-plane components\n%v", diff)
	}
	ml.FullReciprocalDifference = diff.Block2()

	// Fold a reduced basis of the difference so the Moiré lattice does not
	// depend on how the input basis was written.
	reducedDiff := reduceReciprocalDifference(ml.FullReciprocalDifference)
	for _, z := range Zones {
		folded, err := BringVectorsIntoVoronoi(reducedDiff, ml.ReciprocalLattices[z], o.invariantTol)
		if err != nil {
			return MoireLattice{}, err
		}
		ml.BrillouinZoneReciprocalDifference[z] = folded

		for i := 0; i < 2; i++ {
			ml.IsWithinBrillouinZoneOverlap[z][i] = IsWithinVoronoi(folded.Col(i), ml.ReciprocalLattices[z.Other()], o.voronoiTol)
		}

		recip := folded
		if math.Abs(folded.Det()) < o.degenerateTol {
			ml.Degenerate[z] = true
			recip = ml.ReciprocalLattices[z].ColumnMatrix().Block2()
		}
		if ml.MoireLattices[z], err = MakeMoireLatticeFromReciprocalDifference(recip, ml.AlignedLattice.C()); err != nil {
			return MoireLattice{}, err
		}
	}
	return ml, nil
}

// Real returns the real-space lattice of a layer.
func (ml MoireLattice) Real(l Layer) xtal.Lattice {
	if l == Rotated {
		return ml.RotatedLattice
	}
	return ml.AlignedLattice
}

// Reciprocal returns the reciprocal lattice of a layer.
func (ml MoireLattice) Reciprocal(l Layer) xtal.Lattice { return ml.ReciprocalLattices[l] }

// Moire returns the real-space Moiré lattice built in a zone.
func (ml MoireLattice) Moire(z Zone) xtal.Lattice { return ml.MoireLattices[z] }

// FullOverlap reports whether all four overlap flags are set, i.e. the
// twist is commensurate before any approximation.
func (ml MoireLattice) FullOverlap() bool {
	for _, z := range Zones {
		for i := 0; i < 2; i++ {
			if !ml.IsWithinBrillouinZoneOverlap[z][i] {
				return false
			}
		}
	}
	return true
}

// reductionTol keeps difference bases that are reduced up to rounding, such
// as those of hexagonal layers, exactly as given.
const reductionTol = 1e-8

// reduceReciprocalDifference returns a Gauss-reduced basis of the 2D lattice
// spanned by the columns of diff, with the same orientation.
func reduceReciprocalDifference(diff matrix.Mat2) matrix.Mat2 {
	if diff.Det() == 0 {
		return diff
	}
	basis := matrix.Identity3().WithBlock2(diff)
	u := xtal.GaussReduceAB(basis, matrix.IdentityI3(), reductionTol)
	return matrix.Mul(basis, u.Float()).Block2()
}
