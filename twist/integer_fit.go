// SPDX-License-Identifier: MIT

package twist

import (
	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// ApproximateIntegerTransformation returns the integer matrix T closest to
// the exact transformation L⁻¹·M relating l to m, together with the rounding
// residual E = L⁻¹·M − T, so that L·(T + E) = M.
//
// Rounding is elementwise, half away from zero.
//
// Errors:
//   - ErrGeometry if l is not invertible. A value built by xtal is always
//     invertible, so this only fires for the zero Lattice.
func ApproximateIntegerTransformation(l, m xtal.Lattice) (matrix.IMat3, matrix.Mat3, error) {
	inv, err := matrix.Inverse(l.ColumnMatrix())
	if err != nil {
		return matrix.IMat3{}, matrix.Mat3{}, geometryf(err, "integer fit")
	}
	exact := matrix.Mul(inv, m.ColumnMatrix())
	t := matrix.Round(exact)
	return t, matrix.Sub(exact, t.Float()), nil
}
