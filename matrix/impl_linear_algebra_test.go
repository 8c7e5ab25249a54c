// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the fixed-size kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goirijo/casm-utilities-sub000/matrix"
)

const tol = 1e-12

func hexagonal() matrix.Mat3 {
	return matrix.FromColumns(
		matrix.Vec3{2.4684159756, 0, 0},
		matrix.Vec3{-1.2342079878, 2.1377109420, 0},
		matrix.Vec3{0, 0, 9.9990577698},
	)
}

func TestInverse_RoundTrip(t *testing.T) {
	cases := map[string]matrix.Mat3{
		"identity":    matrix.Identity3(),
		"hexagonal":   hexagonal(),
		"permutation": {{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		"rotation":    matrix.RotationZ(math.Pi / 2),
		"skewed":      {{3, 1, 0.5}, {-2, 4, 1}, {0.25, 0, 7}},
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			inv, err := matrix.Inverse(m)
			require.NoError(t, err)
			assert.True(t, matrix.AlmostEqual(matrix.Mul(m, inv), matrix.Identity3(), 1e-10))
			assert.True(t, matrix.AlmostEqual(matrix.Mul(inv, m), matrix.Identity3(), 1e-10))
		})
	}
}

func TestInverse_Singular(t *testing.T) {
	m := matrix.FromColumns(matrix.Vec3{1, 2, 3}, matrix.Vec3{2, 4, 6}, matrix.Vec3{0, 0, 1})
	_, err := matrix.Inverse(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, matrix.ErrSingular))

	_, err = matrix.Inverse(matrix.Mat3{})
	assert.True(t, errors.Is(err, matrix.ErrSingular))
}

func TestInverse_ScaleFree(t *testing.T) {
	// Tiny but perfectly conditioned cells must invert.
	m := matrix.Scale(matrix.Identity3(), 1e-9)
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	assert.InDelta(t, 1e9, inv[0][0], 1e-3)
}

func TestInverse_NaN(t *testing.T) {
	m := matrix.Identity3()
	m[1][2] = math.NaN()
	_, err := matrix.Inverse(m)
	assert.True(t, errors.Is(err, matrix.ErrNaNInf))
}

func TestInverse2(t *testing.T) {
	m := matrix.Mat2{{2, 1}, {1, 3}}
	inv, err := matrix.Inverse2(m)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, inv[0][0], tol)
	assert.InDelta(t, -0.2, inv[0][1], tol)
	assert.InDelta(t, -0.2, inv[1][0], tol)
	assert.InDelta(t, 0.4, inv[1][1], tol)

	_, err = matrix.Inverse2(matrix.Mat2{{1, 2}, {2, 4}})
	assert.True(t, errors.Is(err, matrix.ErrSingular))
}

func TestDetAndTranspose(t *testing.T) {
	m := matrix.Mat3{{1, 2, 3}, {0, 1, 4}, {5, 6, 0}}
	assert.InDelta(t, 1.0, matrix.Det(m), tol)
	assert.InDelta(t, matrix.Det(m), matrix.Det(matrix.Transpose(m)), tol)
	assert.Equal(t, m, matrix.Transpose(matrix.Transpose(m)))
}

func TestRound(t *testing.T) {
	m := matrix.Mat3{{0.4999, 0.5, -0.5}, {1.51, -1.49, 2.0}, {-0.0001, 7.5, -7.5}}
	want := matrix.IMat3{{0, 1, -1}, {2, -1, 2}, {0, 8, -8}}
	assert.Equal(t, want, matrix.Round(m))
}

func TestIMat3(t *testing.T) {
	a := matrix.IMat3{{2, 1, 0}, {1, 2, 0}, {0, 0, 1}}
	assert.Equal(t, 3, a.Det())
	assert.Equal(t, a, a.MulI(matrix.IdentityI3()))
	assert.Equal(t, 9, a.MulI(a).Det())
	assert.True(t, matrix.AlmostEqual(a.Float(), matrix.Mat3{{2, 1, 0}, {1, 2, 0}, {0, 0, 1}}, 0))
}

func TestRotationZ(t *testing.T) {
	for _, deg := range []float64{0, 15, 90, 137.5, -33} {
		r := matrix.RotationZ(deg * math.Pi / 180)
		assert.InDelta(t, 1.0, matrix.Det(r), 1e-12)
		assert.True(t, matrix.AlmostEqual(matrix.Mul(matrix.Transpose(r), r), matrix.Identity3(), 1e-12))
	}
	r := matrix.RotationZ(math.Pi / 2)
	assert.True(t, matrix.VecAlmostEqual(matrix.MulVec(r, matrix.Vec3{1, 0, 0}), matrix.Vec3{0, 1, 0}, 1e-12))
}

func TestColumnsAndBlocks(t *testing.T) {
	m := hexagonal()
	assert.Equal(t, matrix.Vec3{-1.2342079878, 2.1377109420, 0}, m.Col(1))
	assert.Equal(t, matrix.Vec3{0, 0, 9.9990577698}, m.Row(2))

	b := m.Block2()
	assert.Equal(t, matrix.Vec2{2.4684159756, 0}, b.Col(0))
	assert.Equal(t, m, m.WithBlock2(b))

	replaced := m.WithCol(2, matrix.Vec3{0, 0, 1})
	assert.Equal(t, matrix.Vec3{0, 0, 1}, replaced.Col(2))
	assert.Equal(t, matrix.Vec3{0, 0, 9.9990577698}, m.Col(2), "WithCol must not mutate the receiver")
}

func TestVec3(t *testing.T) {
	x, y := matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 1, 0}
	assert.Equal(t, matrix.Vec3{0, 0, 1}, x.Cross(y))
	assert.InDelta(t, 0.0, x.Dot(y), tol)
	assert.InDelta(t, 5.0, matrix.Vec3{3, 4, 0}.Norm(), tol)
	assert.InDelta(t, 1.0, matrix.Vec3{3, 4, 12}.Normalized().Norm(), tol)
	assert.Equal(t, matrix.Vec3{}, matrix.Vec3{}.Normalized())
	assert.Equal(t, matrix.Vec3{1, 2, 0}, matrix.Vec2{1, 2}.Vec3())
}

func TestValidators(t *testing.T) {
	assert.NoError(t, matrix.ValidateTolerance(0))
	assert.True(t, errors.Is(matrix.ValidateTolerance(-1), matrix.ErrBadTolerance))
	assert.True(t, errors.Is(matrix.ValidateTolerance(math.Inf(1)), matrix.ErrBadTolerance))

	asym := matrix.Mat3{{1, 2, 0}, {2.1, 1, 0}, {0, 0, 1}}
	assert.True(t, errors.Is(matrix.ValidateSymmetric(asym, 1e-3), matrix.ErrAsymmetry))
	assert.NoError(t, matrix.ValidateSymmetric(asym, 0.2))
}
