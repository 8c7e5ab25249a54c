// SPDX-License-Identifier: MIT

// Package config loads the run description of the twist CLI: the slab
// (lattice and sites), the twist angle, the lattice-site budget and the
// search tolerances.
//
// Sources, lowest precedence first: SetDefaults, a YAML/TOML/JSON file,
// TWIST_* environment variables (TWIST_ANGLE, TWIST_BUDGET, ...), and
// finally command-line flags applied by the caller.
//
//	lattice:
//	  a: [2.4684159756, 0, 0]
//	  b: [-1.2342079878, 2.1377109420, 0]
//	  c: [0, 0, 9.9990577698]
//	sites:
//	  - {coord: [0, 0, 0.5], label: C}
//	  - {coord: [0.6666666667, 0.3333333333, 0.5], label: C}
//	angle: 1.05
//	budget: 2000
package config
