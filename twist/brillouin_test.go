// SPDX-License-Identifier: MIT
package twist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/twist"
)

func TestBringVectorsIntoVoronoi_Square(t *testing.T) {
	recip := squareLattice(t).Reciprocal()
	g := 2 * math.Pi
	cols := matrix.Mat2{{0.9 * g, 0.2 * g}, {0.1 * g, -1.3 * g}}

	folded, err := twist.BringVectorsIntoVoronoi(cols, recip, twist.DefaultInvariantTol)
	require.NoError(t, err)
	assert.InDelta(t, -0.1*g, folded.Col(0)[0], tol)
	assert.InDelta(t, 0.1*g, folded.Col(0)[1], tol)
	assert.InDelta(t, 0.2*g, folded.Col(1)[0], tol)
	assert.InDelta(t, -0.3*g, folded.Col(1)[1], tol)
}

func TestBringVectorsIntoVoronoi_FoldedIsShortestImage(t *testing.T) {
	recip := grapheneLattice(t).Reciprocal()
	a, b := recip.A().XY(), recip.B().XY()
	for _, v := range []matrix.Vec2{{3.1, -0.4}, {-7.7, 2.2}, {0.01, 0.02}, {12, 12}} {
		folded, err := twist.BringVectorsIntoVoronoi(matrix.Mat2{{v[0], 0}, {v[1], 0}}, recip, twist.DefaultInvariantTol)
		require.NoError(t, err)
		f := folded.Col(0)

		// Same coset as v.
		frac := recip.FracCoords(matrix.Vec3{v[0] - f[0], v[1] - f[1], 0})
		assert.InDelta(t, math.Round(frac[0]), frac[0], 1e-9)
		assert.InDelta(t, math.Round(frac[1]), frac[1], 1e-9)

		// No neighboring image is shorter.
		n2 := f[0]*f[0] + f[1]*f[1]
		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				x := f[0] - float64(i)*a[0] - float64(j)*b[0]
				y := f[1] - float64(i)*a[1] - float64(j)*b[1]
				assert.GreaterOrEqual(t, x*x+y*y, n2-1e-9)
			}
		}
		assert.True(t, twist.IsWithinVoronoi(f, recip, twist.DefaultVoronoiTol))
	}
}

func TestIsWithinVoronoi(t *testing.T) {
	recip := squareLattice(t).Reciprocal()
	g := 2 * math.Pi
	assert.True(t, twist.IsWithinVoronoi(matrix.Vec2{0.3 * g, -0.2 * g}, recip, twist.DefaultVoronoiTol))
	assert.False(t, twist.IsWithinVoronoi(matrix.Vec2{0.7 * g, 0}, recip, twist.DefaultVoronoiTol))
	// Boundary points stay put.
	assert.True(t, twist.IsWithinVoronoi(matrix.Vec2{0.5 * g, 0.5 * g}, recip, twist.DefaultVoronoiTol))
}
