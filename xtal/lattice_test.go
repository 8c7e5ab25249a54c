// SPDX-License-Identifier: MIT
package xtal_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

func mustLattice(t *testing.T, a, b, c matrix.Vec3) xtal.Lattice {
	t.Helper()
	lat, err := xtal.NewLattice(a, b, c)
	require.NoError(t, err)
	return lat
}

func square(t *testing.T) xtal.Lattice {
	return mustLattice(t, matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 1, 0}, matrix.Vec3{0, 0, 5})
}

func hexagonal(t *testing.T) xtal.Lattice {
	const a = 2.4684159756
	return mustLattice(t,
		matrix.Vec3{a, 0, 0},
		matrix.Vec3{-a / 2, a * math.Sqrt(3) / 2, 0},
		matrix.Vec3{0, 0, 9.9990577698},
	)
}

func TestNewLattice_Singular(t *testing.T) {
	_, err := xtal.NewLattice(matrix.Vec3{1, 0, 0}, matrix.Vec3{2, 0, 0}, matrix.Vec3{0, 0, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, xtal.ErrSingularLattice))
	assert.True(t, errors.Is(err, matrix.ErrSingular))
}

func TestLattice_Accessors(t *testing.T) {
	lat := square(t)
	assert.Equal(t, matrix.Vec3{1, 0, 0}, lat.A())
	assert.Equal(t, matrix.Vec3{0, 1, 0}, lat.B())
	assert.Equal(t, matrix.Vec3{0, 0, 5}, lat.C())
	assert.InDelta(t, 5.0, lat.Volume(), 1e-12)

	left := mustLattice(t, matrix.Vec3{0, 1, 0}, matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 0, 5})
	assert.InDelta(t, -5.0, left.Det(), 1e-12)
	assert.InDelta(t, 5.0, left.Volume(), 1e-12)
}

func TestLattice_Reciprocal(t *testing.T) {
	lat := hexagonal(t)
	rec := lat.Reciprocal()

	// aᵢ·bⱼ* = 2π δᵢⱼ
	prod := matrix.Mul(matrix.Transpose(lat.ColumnMatrix()), rec.ColumnMatrix())
	assert.True(t, matrix.AlmostEqual(prod, matrix.Scale(matrix.Identity3(), 2*math.Pi), 1e-12))

	assert.True(t, rec.Reciprocal().AlmostEqual(lat, 1e-12))
	assert.InDelta(t, math.Pow(2*math.Pi, 3)/lat.Volume(), rec.Volume(), 1e-9)
}

func TestLattice_Coords(t *testing.T) {
	lat := hexagonal(t)
	f := matrix.Vec3{0.25, -1.5, 0.75}
	assert.True(t, matrix.VecAlmostEqual(lat.FracCoords(lat.CartCoords(f)), f, 1e-12))
}

func TestLattice_Superlattice(t *testing.T) {
	lat := square(t)
	super, err := lat.Superlattice(matrix.IMat3{{2, 1, 0}, {0, 3, 0}, {0, 0, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 30.0, super.Volume(), 1e-12)
	assert.Equal(t, matrix.Vec3{1, 3, 0}, super.B())

	_, err = lat.Superlattice(matrix.IMat3{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}})
	assert.True(t, errors.Is(err, xtal.ErrSingularTransform))
}

func TestLattice_BringWithinWignerSeitz(t *testing.T) {
	lat := square(t)
	cases := []struct {
		name string
		in   matrix.Vec3
		want matrix.Vec3
	}{
		{"inside", matrix.Vec3{0.2, -0.3, 0}, matrix.Vec3{0.2, -0.3, 0}},
		{"one cell over", matrix.Vec3{1.2, 0.1, 0}, matrix.Vec3{0.2, 0.1, 0}},
		{"far away", matrix.Vec3{-7.4, 3.3, 0}, matrix.Vec3{-0.4, 0.3, 0}},
		{"lattice point", matrix.Vec3{3, -2, 0}, matrix.Vec3{0, 0, 0}},
		{"boundary is a fixed point", matrix.Vec3{0.5, 0, 0}, matrix.Vec3{0.5, 0, 0}},
		{"corner is a fixed point", matrix.Vec3{-0.5, 0.5, 0}, matrix.Vec3{-0.5, 0.5, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := lat.BringWithinWignerSeitz(tc.in)
			assert.True(t, matrix.VecAlmostEqual(got, tc.want, 1e-12), "got %v", got)
			assert.True(t, lat.IsWithinWignerSeitz(got, 1e-12))
		})
	}
	assert.False(t, lat.IsWithinWignerSeitz(matrix.Vec3{0.6, 0, 0}, 1e-12))
}

func TestLattice_BringWithinWignerSeitz_Hexagonal(t *testing.T) {
	lat := hexagonal(t)
	a := lat.A()
	b := lat.B()
	// a+b is a lattice vector; a slightly perturbed copy folds to the perturbation.
	v := a.Add(b).Add(matrix.Vec3{0.01, -0.02, 0})
	assert.True(t, matrix.VecAlmostEqual(lat.BringWithinWignerSeitz(v), matrix.Vec3{0.01, -0.02, 0}, 1e-12))

	// Idempotent.
	w := matrix.Vec3{3.9, 2.2, 0}
	once := lat.BringWithinWignerSeitz(w)
	assert.Equal(t, once, lat.BringWithinWignerSeitz(once))
	for _, n := range []matrix.Vec3{a, b, a.Add(b), a.Sub(b)} {
		assert.LessOrEqual(t, once.Norm(), once.Sub(n).Norm()+1e-12)
		assert.LessOrEqual(t, once.Norm(), once.Add(n).Norm()+1e-12)
	}
}

func TestLattice_BringWithinWignerSeitz_SkewedBasis(t *testing.T) {
	reduced := square(t)
	for _, b := range []matrix.Vec3{{7, 1, 0}, {-13, 1, 0}, {40, 1, 0}} {
		skewed := mustLattice(t, matrix.Vec3{1, 0, 0}, b, matrix.Vec3{0, 0, 5})
		for _, v := range []matrix.Vec3{{2.4, 3.4, 0}, {-7.4, 3.3, 0}, {0.2, -0.3, 0}, {12.1, -30.45, 0}} {
			want := reduced.BringWithinWignerSeitz(v)
			got := skewed.BringWithinWignerSeitz(v)
			assert.True(t, matrix.VecAlmostEqual(got, want, 1e-9), "b=%v v=%v got %v want %v", b, v, got, want)
			assert.True(t, skewed.IsWithinWignerSeitz(got, 1e-9))
			assert.Equal(t, reduced.IsWithinWignerSeitz(v, 1e-9), skewed.IsWithinWignerSeitz(v, 1e-9))
		}
	}
}

func TestLattice_BringWithinWignerSeitz_SlantedC(t *testing.T) {
	lat := mustLattice(t, matrix.Vec3{1, 0, 0}, matrix.Vec3{0, 1, 0}, matrix.Vec3{9.3, -6.2, 5})
	got := lat.BringWithinWignerSeitz(lat.C().Add(matrix.Vec3{1.3, -2.8, 0}))
	assert.True(t, matrix.VecAlmostEqual(got, matrix.Vec3{0.3, 0.2, 0}, 1e-9), "got %v", got)
}

func TestGaussReduceAB(t *testing.T) {
	basis := matrix.Identity3()
	tests := []struct {
		name string
		in   matrix.IMat3
	}{
		{"already reduced", matrix.IdentityI3()},
		{"sheared", matrix.IMat3{{1, 7, 0}, {0, 1, 0}, {0, 0, 1}}},
		{"long first column", matrix.IMat3{{9, 1, 0}, {1, 0, 0}, {0, 0, 1}}},
		{"supercell", matrix.IMat3{{3, 2, 0}, {0, 5, 0}, {0, 0, 1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := xtal.GaussReduceAB(basis, tc.in, 0)
			u := matrix.MulVec(basis, got.Float().Col(0))
			v := matrix.MulVec(basis, got.Float().Col(1))

			assert.Equal(t, abs(tc.in.Det()), got.Det())
			assert.LessOrEqual(t, u.Dot(u), v.Dot(v))
			assert.LessOrEqual(t, math.Abs(u.Dot(v)), u.Dot(u)/2)
			assert.Equal(t, tc.in.Float().Col(2), got.Float().Col(2))

			// Same sublattice: each side is an integer combination of the other.
			inv, err := matrix.Inverse(tc.in.Float())
			require.NoError(t, err)
			mix := matrix.Mul(inv, got.Float())
			assert.True(t, matrix.AlmostEqual(mix, matrix.Round(mix).Float(), 1e-9))
			assert.Equal(t, 1, abs(matrix.Round(mix).Det()))
		})
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
