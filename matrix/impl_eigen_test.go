// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goirijo/casm-utilities-sub000/matrix"
)

func diag(v matrix.Vec3) matrix.Mat3 {
	return matrix.Mat3{{v[0], 0, 0}, {0, v[1], 0}, {0, 0, v[2]}}
}

func TestEigen_Reconstructs(t *testing.T) {
	a := matrix.Mat3{{4, 1, 0.5}, {1, 3, -0.25}, {0.5, -0.25, 2}}
	vals, q, err := matrix.Eigen(a, matrix.DefaultEigenTol, matrix.DefaultEigenMaxIter)
	require.NoError(t, err)

	// Q orthogonal, A = Q·D·Qᵀ
	assert.True(t, matrix.AlmostEqual(matrix.Mul(matrix.Transpose(q), q), matrix.Identity3(), 1e-12))
	rebuilt := matrix.Mul(matrix.Mul(q, diag(vals)), matrix.Transpose(q))
	assert.True(t, matrix.AlmostEqual(rebuilt, a, 1e-12))

	// Trace is the sum of eigenvalues.
	assert.InDelta(t, a[0][0]+a[1][1]+a[2][2], vals[0]+vals[1]+vals[2], 1e-12)
}

func TestEigen_KnownSpectrum(t *testing.T) {
	a := matrix.Mat3{{2, 1, 0}, {1, 2, 0}, {0, 0, 5}}
	vals, _, err := matrix.Eigen(a, matrix.DefaultEigenTol, matrix.DefaultEigenMaxIter)
	require.NoError(t, err)
	got := []float64{vals[0], vals[1], vals[2]}
	sort.Float64s(got)
	assert.InDeltaSlice(t, []float64{1, 3, 5}, got, 1e-12)
}

func TestEigen_Asymmetric(t *testing.T) {
	_, _, err := matrix.Eigen(matrix.Mat3{{1, 2, 0}, {0, 1, 0}, {0, 0, 1}}, 1e-12, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, matrix.ErrAsymmetry))
}

func TestEigen_NoBudget(t *testing.T) {
	a := matrix.Mat3{{4, 1, 0.5}, {1, 3, -0.25}, {0.5, -0.25, 2}}
	_, _, err := matrix.Eigen(a, matrix.DefaultEigenTol, 0)
	assert.True(t, errors.Is(err, matrix.ErrEigenFailed))
}

func TestSqrtSPD(t *testing.T) {
	c := matrix.Mat3{{5, 1, 0}, {1, 4, 0.5}, {0, 0.5, 3}}
	u, err := matrix.SqrtSPD(c, matrix.DefaultEigenTol)
	require.NoError(t, err)
	assert.True(t, matrix.AlmostEqual(matrix.Mul(u, u), c, 1e-12))
	assert.True(t, matrix.AlmostEqual(u, matrix.Transpose(u), 0))

	_, err = matrix.SqrtSPD(diag(matrix.Vec3{1, -1, 1}), matrix.DefaultEigenTol)
	assert.True(t, errors.Is(err, matrix.ErrNotPositiveDefinite))
}

func TestPolar(t *testing.T) {
	theta := 7.5 * math.Pi / 180
	stretch := matrix.Mat3{{1.02, 0.01, 0}, {0.01, 0.97, 0}, {0, 0, 1}}
	f := matrix.Mul(matrix.RotationZ(theta), stretch)

	r, u, err := matrix.Polar(f)
	require.NoError(t, err)
	assert.True(t, matrix.AlmostEqual(r, matrix.RotationZ(theta), 1e-10))
	assert.True(t, matrix.AlmostEqual(u, stretch, 1e-10))
	assert.True(t, matrix.AlmostEqual(matrix.Mul(r, u), f, 1e-12))
}

func TestPolar_Identity(t *testing.T) {
	r, u, err := matrix.Polar(matrix.Identity3())
	require.NoError(t, err)
	assert.Equal(t, matrix.Identity3(), r)
	assert.Equal(t, matrix.Identity3(), u)
}

func TestPolar_Singular(t *testing.T) {
	_, _, err := matrix.Polar(diag(matrix.Vec3{1, 0, 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, matrix.ErrNotPositiveDefinite))
}
