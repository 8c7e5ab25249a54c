// SPDX-License-Identifier: MIT

// Package twist: functional configuration for the Moiré engine.
// This file defines:
//   - documented defaults (constants),
//   - Option / Options (functional options with internal state),
//   - WithX constructors that panic on nonsensical values,
//   - gatherOptions helper that applies them over the defaults.
//
// Every tolerance the algorithms use lives here; nothing below reads a
// hidden global.
package twist

import (
	"math"
	"runtime"

	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultVoronoiTol is the absolute tolerance (reciprocal length units)
	// under which folding a vector into a Brillouin zone counts as a no-op.
	DefaultVoronoiTol = 1e-10

	// DefaultInvariantTol bounds the entries that must vanish by
	// construction: out-of-plane components of the reciprocal difference and
	// of the Brillouin-zone reference lattices.
	DefaultInvariantTol = 1e-8

	// DefaultDegenerateTol is the |det| below which a folded reciprocal
	// difference is treated as null, i.e. the twist is a symmetry of the
	// layer and the Moiré lattice collapses onto the layer cell.
	DefaultDegenerateTol = 1e-8

	// DefaultPlanarTol bounds the out-of-plane strain accepted by
	// NewDeformationReport.
	DefaultPlanarTol = 1e-8

	// DefaultMinimumImprovement is the error margin a larger supercell must
	// win by before MoireStructureApproximator prefers it.
	DefaultMinimumImprovement = 1e-10
)

// ---------- Internal panic messages ----------

const (
	panicToleranceInvalid = "twist: tolerance must be finite and non-negative"
	panicWorkersInvalid   = "twist: WithWorkers: workers must be >= 0"
	panicLoggerNil        = "twist: WithLogger: logger must not be nil"
)

// ---------- Public option type ----------

// Option mutates Options. Constructors panic only on programmer error.
type Option func(*Options)

// Options holds the resolved configuration; fields are read through
// gatherOptions only.
type Options struct {
	logger             *zap.Logger
	workers            int
	voronoiTol         float64
	invariantTol       float64
	degenerateTol      float64
	planarTol          float64
	minimumImprovement float64
}

// WithLogger sets the logger used for search progress (Debug level).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}
	return func(o *Options) { o.logger = l }
}

// WithWorkers bounds concurrent candidate evaluation in Expand.
// 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}

// WithVoronoiTolerance sets the Brillouin-zone membership tolerance.
func WithVoronoiTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.voronoiTol = tol }
}

// WithInvariantTolerance sets the tolerance of internal construction checks.
func WithInvariantTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.invariantTol = tol }
}

// WithDegenerateTolerance sets the |det| threshold of a null reciprocal difference.
func WithDegenerateTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.degenerateTol = tol }
}

// WithPlanarTolerance sets the out-of-plane strain tolerance of deformation reports.
func WithPlanarTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.planarTol = tol }
}

// WithMinimumImprovement sets the margin used when picking the smallest
// acceptable supercell for structure generation.
func WithMinimumImprovement(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.minimumImprovement = tol }
}

func mustTolerance(tol float64) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		logger:             zap.NewNop(),
		voronoiTol:         DefaultVoronoiTol,
		invariantTol:       DefaultInvariantTol,
		degenerateTol:      DefaultDegenerateTol,
		planarTol:          DefaultPlanarTol,
		minimumImprovement: DefaultMinimumImprovement,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
