// SPDX-License-Identifier: MIT

package twist

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// MoireApproximant forces both layers onto one periodic cell close to a
// target Moiré lattice. Fields indexed by Layer.
//
// For each layer X:
//
//	T_X, E_X = ApproximateIntegerTransformation(X, M)
//	S_X      = X·T_X
//	S̄        = (S_Aligned + S_Rotated) / 2
//	F_X      = S̄·S_X⁻¹
//	L'_X     = F_X·X        so that  L'_X·T_X = S̄
type MoireApproximant struct {
	// ApproximateMoireLattice is S̄, the shared commensurate cell.
	ApproximateMoireLattice xtal.Lattice

	// ApproximateLattices holds the deformed tiling unit L'_X of each layer.
	ApproximateLattices [2]xtal.Lattice

	// IntegerTransformations holds T_X with L'_X·T_X = S̄.
	IntegerTransformations [2]matrix.IMat3

	// IntegerTransformationErrors holds the rounding residual E_X.
	IntegerTransformationErrors [2]matrix.Mat3

	// ApproximationDeformations holds F_X, the deformation applied to layer X.
	ApproximationDeformations [2]matrix.Mat3
}

// NewMoireApproximant builds the approximant of moire for the two layers.
//
// Errors:
//   - ErrGeometry if an integer fit rounds to a singular T_X or the averaged
//     cell is singular.
func NewMoireApproximant(moire, aligned, rotated xtal.Lattice) (MoireApproximant, error) {
	var (
		ma     MoireApproximant
		layers = [2]xtal.Lattice{aligned, rotated}
		supers [2]xtal.Lattice
		err    error
	)
	for _, l := range Layers {
		ma.IntegerTransformations[l], ma.IntegerTransformationErrors[l], err = ApproximateIntegerTransformation(layers[l], moire)
		if err != nil {
			return MoireApproximant{}, errors.Wrapf(err, "%s layer", l)
		}
		if supers[l], err = layers[l].Superlattice(ma.IntegerTransformations[l]); err != nil {
			return MoireApproximant{}, geometryf(err, "%s superlattice", l)
		}
	}

	sBar := matrix.Scale(matrix.Add(supers[Aligned].ColumnMatrix(), supers[Rotated].ColumnMatrix()), 0.5)
	if ma.ApproximateMoireLattice, err = xtal.FromColumnMatrix(sBar); err != nil {
		return MoireApproximant{}, geometryf(err, "averaged Moiré lattice")
	}

	for _, l := range Layers {
		f := matrix.Mul(sBar, supers[l].InverseMatrix())
		ma.ApproximationDeformations[l] = f
		if ma.ApproximateLattices[l], err = xtal.FromColumnMatrix(matrix.Mul(f, layers[l].ColumnMatrix())); err != nil {
			return MoireApproximant{}, geometryf(err, "%s tiling unit", l)
		}
	}
	return ma, nil
}

// ErrorMetric measures how far the approximant is from commensurate: the root sum
// of squares of the strain metrics η of every layer's deformation. It is 0
// exactly when both deformations are pure rotations.
//
// Errors:
//   - Propagated NewDeformationReport errors (non-planar or inverting F_X).
func (ma MoireApproximant) ErrorMetric(opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	return ma.errorMetric(o)
}

func (ma MoireApproximant) errorMetric(o Options) (float64, error) {
	var sum float64
	for _, l := range Layers {
		report, err := newDeformationReport(ma.ApproximationDeformations[l], o)
		if err != nil {
			return 0, errors.Wrapf(err, "%s layer", l)
		}
		for _, eta := range report.StrainMetrics {
			sum += eta * eta
		}
	}
	return math.Sqrt(sum), nil
}
