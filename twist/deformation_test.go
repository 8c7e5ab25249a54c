// SPDX-License-Identifier: MIT
package twist_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/twist"
)

func TestNewDeformationReport_Identity(t *testing.T) {
	d, err := twist.NewDeformationReport(matrix.Identity3())
	require.NoError(t, err)
	assert.True(t, matrix.AlmostEqual(d.Rotation, matrix.Identity3(), tol))
	assert.True(t, matrix.AlmostEqual(d.Strain, matrix.Identity3(), tol))
	assert.InDelta(t, 0, d.RotationAngle, tol)
	for _, eta := range d.StrainMetrics {
		assert.InDelta(t, 0, eta, tol)
	}
}

func TestNewDeformationReport_RotatedStretch(t *testing.T) {
	stretch := matrix.Mat3{{1.01, 0, 0}, {0, 0.98, 0}, {0, 0, 1}}
	f := matrix.Mul(matrix.RotationZ(10*math.Pi/180), stretch)

	d, err := twist.NewDeformationReport(f)
	require.NoError(t, err)
	assert.Equal(t, f, d.Deformation)
	assert.True(t, matrix.AlmostEqual(d.Strain, stretch, tol))
	assert.InDelta(t, 10, d.RotationAngle, 1e-8)
	assert.InDelta(t, -0.01/math.Sqrt2, d.StrainMetrics[0], tol)
	assert.InDelta(t, 0.03/math.Sqrt2, d.StrainMetrics[1], tol)
	assert.InDelta(t, 0, d.StrainMetrics[2], tol)
	assert.Equal(t, d.StrainMetrics[0], d.DilationStrain)
	assert.InDelta(t, 0.03/math.Sqrt2, d.DeviatoricStrain, tol)
}

func TestNewDeformationReport_Shear(t *testing.T) {
	f := matrix.Mat3{{1, 0.02, 0}, {0, 1, 0}, {0, 0, 1}}
	d, err := twist.NewDeformationReport(f)
	require.NoError(t, err)

	assert.True(t, matrix.AlmostEqual(matrix.Mul(d.Rotation, d.Strain), f, tol))
	assert.True(t, matrix.AlmostEqual(d.Strain, matrix.Transpose(d.Strain), tol))
	assert.Less(t, d.RotationAngle, 0.0)
	assert.Greater(t, d.StrainMetrics[2], 0.0)
}

func TestNewDeformationReport_NonPlanar(t *testing.T) {
	_, err := twist.NewDeformationReport(matrix.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1.1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, twist.ErrNonPlanarDeformation))

	// A looser tolerance accepts it.
	_, err = twist.NewDeformationReport(matrix.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1.1}}, twist.WithPlanarTolerance(0.2))
	assert.NoError(t, err)
}

func TestNewDeformationReport_Inverting(t *testing.T) {
	for _, f := range []matrix.Mat3{
		{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
		{{1, 0, 0}, {0, 0, 0}, {0, 0, 1}},
	} {
		_, err := twist.NewDeformationReport(f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, twist.ErrGeometry))
	}
}
