// SPDX-License-Identifier: MIT

package twist

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/goirijo/casm-utilities-sub000/matrix"
)

// DeformationReport splits a planar deformation gradient into rotation and
// stretch and reduces the stretch to scalar strain metrics.
type DeformationReport struct {
	// Deformation is the input F.
	Deformation matrix.Mat3
	// Rotation is R in F = R·U (proper, det = +1).
	Rotation matrix.Mat3
	// Strain is U in F = R·U (symmetric positive-definite stretch).
	Strain matrix.Mat3
	// RotationAngle is the in-plane angle of R in degrees, atan2(R₁₀, R₀₀).
	RotationAngle float64
	// StrainMetrics are η₁ = (E₀₀+E₁₁)/√2, η₂ = (E₀₀−E₁₁)/√2, η₃ = √2·E₀₁
	// with E = U − I.
	StrainMetrics [3]float64
	// DilationStrain is η₁.
	DilationStrain float64
	// DeviatoricStrain is √(η₂² + η₃²).
	DeviatoricStrain float64
}

// NewDeformationReport decomposes f by right polar decomposition, with the
// stretch taken as the principal square root of fᵀf.
//
// f must be planar: U − I may have no entries in its third row or column
// beyond the planar tolerance.
//
// Errors:
//   - ErrGeometry if det f ≤ 0 or f is singular.
//   - ErrNonPlanarDeformation if f strains out of the ab-plane.
func NewDeformationReport(f matrix.Mat3, opts ...Option) (DeformationReport, error) {
	return newDeformationReport(f, gatherOptions(opts...))
}

func newDeformationReport(f matrix.Mat3, o Options) (DeformationReport, error) {
	if d := matrix.Det(f); !(d > 0) {
		return DeformationReport{}, geometryf(nil, "deformation with det = %g\n%v", d, f)
	}
	r, u, err := matrix.Polar(f)
	if err != nil {
		return DeformationReport{}, geometryf(err, "polar decomposition\n%v", f)
	}

	e := matrix.Sub(u, matrix.Identity3())
	if !matrix.VecAlmostEqual(e.Col(2), matrix.Vec3{}, o.planarTol) ||
		!matrix.VecAlmostEqual(e.Row(2), matrix.Vec3{}, o.planarTol) {
		return DeformationReport{}, errors.Wrapf(ErrNonPlanarDeformation, "strain extends beyond the xy subspace\n%v", e)
	}

	eta := [3]float64{
		(e[0][0] + e[1][1]) / math.Sqrt2,
		(e[0][0] - e[1][1]) / math.Sqrt2,
		math.Sqrt2 * e[0][1],
	}
	return DeformationReport{
		Deformation:      f,
		Rotation:         r,
		Strain:           u,
		RotationAngle:    math.Atan2(r[1][0], r[0][0]) * 180 / math.Pi,
		StrainMetrics:    eta,
		DilationStrain:   eta[0],
		DeviatoricStrain: math.Hypot(eta[1], eta[2]),
	}, nil
}
