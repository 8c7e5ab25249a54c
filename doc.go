// Package casmutils builds periodic approximants of twisted bilayers: a 2D
// layer stacked on a copy of itself rotated by an arbitrary angle.
//
// 🚀 What is in here?
//
//	An incommensurate twist has no finite unit cell. The library finds the
//	Moiré lattice of the twist, searches its supercells for one that both
//	layers tile after a small deformation, and reports that deformation as
//	rotation plus strain.
//
// Packages:
//
//	matrix/        fixed-size 3×3 / 2×2 kernels: inverse, Jacobi eigen, polar
//	xtal/          Lattice and Structure: reciprocal, Wigner–Seitz folding,
//	               superlattices, superstructures, stacking
//	superlattice/  enumeration of supercells by Hermite normal form
//	twist/         Moiré geometry, approximants, budgeted search, bilayers
//	config/        viper-backed run configuration
//	logger/        zap logger for the CLI
//	cmd/twist      cobra CLI: moire, approximate, bilayer, version
//
// Quick example:
//
//	lat, _ := xtal.NewLattice(a, b, c)
//	search, _ := twist.NewMoireApproximator(lat, 1.05, 5000)
//	r := search.BestSmallest(twist.Aligned, twist.Rotated, 1e-8)
//	fmt.Println(r.TrueMoireSupercellMatrix.Det(), r.Error)
//
//	go install github.com/goirijo/casm-utilities-sub000/cmd/twist@latest
package casmutils
