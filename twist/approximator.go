// SPDX-License-Identifier: MIT

package twist

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/superlattice"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// candidate is one evaluated supercell of a true Moiré lattice. Values are
// never modified after evaluate returns them.
type candidate struct {
	size        int
	transform   matrix.IMat3 // true Moiré lattice → supercell
	approximant MoireApproximant
	err         float64
}

// zoneSearch is the search state of one Brillouin zone. The error metric
// covers both layers, so both layers share it.
type zoneSearch struct {
	unit xtal.Lattice

	// sizes[i] holds every candidate with size i+1, in enumeration order.
	sizes [][]*candidate

	// best is the lowest-error candidate seen so far; replaced, never edited.
	best *candidate
}

// MoireApproximator searches supercells of the true Moiré lattice for the
// periodic approximant with the smallest error, within a budget of lattice
// sites that can be raised later with Expand.
//
// Expand mutates the search state; callers sharing one instance must
// serialize Expand against every other method.
type MoireApproximator struct {
	moire MoireLattice
	opts  Options
	zones [2]*zoneSearch
}

// MoireLatticeReport describes one candidate approximant from the point of
// view of one layer.
type MoireLatticeReport struct {
	Zone  Zone  `yaml:"zone"`
	Layer Layer `yaml:"layer"`

	// TrueMoire is the exact Moiré lattice of the zone.
	TrueMoire xtal.Lattice `yaml:"-"`
	// TrueMoireSupercellMatrix takes TrueMoire to the chosen supercell.
	TrueMoireSupercellMatrix matrix.IMat3 `yaml:"true_moire_supercell_matrix"`

	// ApproximateMoire is the commensurate cell shared by both layers.
	ApproximateMoire xtal.Lattice `yaml:"-"`
	// ApproximateTilingUnit is the deformed unit cell of Layer.
	ApproximateTilingUnit xtal.Lattice `yaml:"-"`
	// TilingUnitSupercellMatrix satisfies
	// ApproximateTilingUnit · TilingUnitSupercellMatrix = ApproximateMoire.
	TilingUnitSupercellMatrix matrix.IMat3 `yaml:"tiling_unit_supercell_matrix"`
	// TilingUnitSupercellRoundingError is the residual of the integer fit.
	TilingUnitSupercellRoundingError matrix.Mat3 `yaml:"tiling_unit_supercell_rounding_error"`
	// ApproximationDeformation is the deformation applied to Layer.
	ApproximationDeformation matrix.Mat3 `yaml:"approximation_deformation"`

	// Error is the search's error metric of the whole approximant.
	Error float64 `yaml:"error"`
}

// Deformation analyses the report's ApproximationDeformation.
func (r MoireLatticeReport) Deformation(opts ...Option) (DeformationReport, error) {
	return NewDeformationReport(r.ApproximationDeformation, opts...)
}

// NewMoireApproximator builds the Moiré geometry of lat twisted by degrees,
// the size-1 approximant of each zone, and then expands the search up to
// maxLatticeSites.
//
// Errors:
//   - NewMoireLattice errors.
//   - ErrGeometry if the size-1 approximant of a zone cannot be built.
func NewMoireApproximator(lat xtal.Lattice, degrees float64, maxLatticeSites int, opts ...Option) (*MoireApproximator, error) {
	o := gatherOptions(opts...)
	moire, err := newMoireLattice(lat, degrees, o)
	if err != nil {
		return nil, err
	}

	ma := &MoireApproximator{moire: moire, opts: o}
	for _, z := range Zones {
		unit := moire.Moire(z)
		base, err := ma.evaluate(unit, matrix.IdentityI3(), 1)
		if err != nil {
			return nil, errors.Wrapf(err, "%s zone base approximant", z)
		}
		ma.zones[z] = &zoneSearch{unit: unit, sizes: [][]*candidate{{base}}, best: base}
	}

	if err := ma.Expand(maxLatticeSites); err != nil {
		return nil, err
	}
	return ma, nil
}

// Expand enumerates larger supercells so that the search covers every
// supercell the budget of maxLatticeSites affords.
//
// For each zone the affordable size is maxLatticeSites / MinimumLatticeSites.
// Below 2 nothing happens; the size-1 approximant stays in place. Sizes
// already enumerated are never revisited, so Expand with an equal or
// smaller budget is a no-op and the best error never increases.
//
// Candidates are evaluated concurrently (WithWorkers) and reduced in
// enumeration order with strict less-than, so results do not depend on the
// worker count. Candidates whose approximant cannot be built are skipped.
func (ma *MoireApproximator) Expand(maxLatticeSites int) error {
	for _, z := range Zones {
		if err := ma.expandZone(z, maxLatticeSites); err != nil {
			return errors.Wrapf(err, "%s zone", z)
		}
	}
	return nil
}

func (ma *MoireApproximator) expandZone(z Zone, maxLatticeSites int) error {
	zs := ma.zones[z]
	from := len(zs.sizes) + 1
	to := ma.maxSupercellSize(z, maxLatticeSites)
	if to < from {
		return nil
	}

	cells, err := superlattice.Enumerate(zs.unit, from, to)
	if err != nil {
		return err
	}
	ma.opts.logger.Debug("expanding moire search",
		zap.Stringer("zone", z),
		zap.Int("from_size", from),
		zap.Int("to_size", to),
		zap.Int("candidates", len(cells)),
	)

	results := make([]*candidate, len(cells))
	var g errgroup.Group
	g.SetLimit(ma.opts.workers)
	for i, sc := range cells {
		i, sc := i, sc
		g.Go(func() error {
			c, err := ma.evaluate(sc.Lattice, sc.Transform, sc.Size)
			if err != nil {
				ma.opts.logger.Debug("skipping moire supercell",
					zap.Stringer("zone", z),
					zap.Int("size", sc.Size),
					zap.Error(err),
				)
				return nil
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for size := from; size <= to; size++ {
		zs.sizes = append(zs.sizes, nil)
	}
	best := zs.best
	for _, c := range results {
		if c == nil {
			continue
		}
		zs.sizes[c.size-1] = append(zs.sizes[c.size-1], c)
		if c.err < best.err {
			best = c
		}
	}
	zs.best = best

	ma.opts.logger.Debug("moire search expanded",
		zap.Stringer("zone", z),
		zap.Int("best_size", best.size),
		zap.Float64("best_error", best.err),
	)
	return nil
}

func (ma *MoireApproximator) evaluate(super xtal.Lattice, transform matrix.IMat3, size int) (*candidate, error) {
	approx, err := NewMoireApproximant(super, ma.moire.AlignedLattice, ma.moire.RotatedLattice)
	if err != nil {
		return nil, err
	}
	e, err := approx.errorMetric(ma.opts)
	if err != nil {
		return nil, err
	}
	return &candidate{size: size, transform: transform, approximant: approx, err: e}, nil
}

// MinimumLatticeSites returns the number of layer unit cells (both layers
// together) in the size-1 approximant of zone z; at least 1.
func (ma *MoireApproximator) MinimumLatticeSites(z Zone) int {
	base := ma.zones[z].sizes[0][0].approximant
	n := absInt(base.IntegerTransformations[Aligned].Det()) + absInt(base.IntegerTransformations[Rotated].Det())
	return max(n, 1)
}

func (ma *MoireApproximator) maxSupercellSize(z Zone, maxLatticeSites int) int {
	return max(maxLatticeSites/ma.MinimumLatticeSites(z), 1)
}

// Geometry returns the exact Moiré geometry the search started from.
func (ma *MoireApproximator) Geometry() MoireLattice { return ma.moire }

// Degrees returns the twist angle.
func (ma *MoireApproximator) Degrees() float64 { return ma.moire.InputDegrees }

// TrueMoire returns the exact Moiré lattice of zone z.
func (ma *MoireApproximator) TrueMoire(z Zone) xtal.Lattice { return ma.zones[z].unit }

// EnumeratedSizes returns the largest supercell size searched in zone z.
func (ma *MoireApproximator) EnumeratedSizes(z Zone) int { return len(ma.zones[z].sizes) }

// Best returns the lowest-error approximant found in zone z, as seen from layer l.
func (ma *MoireApproximator) Best(z Zone, l Layer) MoireLatticeReport {
	return ma.report(z, l, ma.zones[z].best)
}

// BestSmallest walks every candidate of zone z from the smallest supercell
// up and only moves to a later one if its error beats the current pick by
// more than tol. tol = 0 yields Best; a larger tol trades accuracy for a
// smaller cell. Negative tol is treated as 0.
func (ma *MoireApproximator) BestSmallest(z Zone, l Layer, tol float64) MoireLatticeReport {
	tol = math.Max(tol, 0)
	var pick *candidate
	for _, cells := range ma.zones[z].sizes {
		for _, c := range cells {
			if pick == nil || c.err < pick.err-tol {
				pick = c
			}
		}
	}
	return ma.report(z, l, pick)
}

// BestOfEachSize returns the lowest-error candidate of every enumerated
// size of zone z, smallest first. Sizes without a usable candidate are
// left out.
func (ma *MoireApproximator) BestOfEachSize(z Zone, l Layer) []MoireLatticeReport {
	var out []MoireLatticeReport
	for _, cells := range ma.zones[z].sizes {
		var pick *candidate
		for _, c := range cells {
			if pick == nil || c.err < pick.err {
				pick = c
			}
		}
		if pick != nil {
			out = append(out, ma.report(z, l, pick))
		}
	}
	return out
}

// All returns a report for every candidate of zone z in enumeration order.
func (ma *MoireApproximator) All(z Zone, l Layer) []MoireLatticeReport {
	var out []MoireLatticeReport
	for _, cells := range ma.zones[z].sizes {
		for _, c := range cells {
			out = append(out, ma.report(z, l, c))
		}
	}
	return out
}

func (ma *MoireApproximator) report(z Zone, l Layer, c *candidate) MoireLatticeReport {
	return MoireLatticeReport{
		Zone:                             z,
		Layer:                            l,
		TrueMoire:                        ma.zones[z].unit,
		TrueMoireSupercellMatrix:         c.transform,
		ApproximateMoire:                 c.approximant.ApproximateMoireLattice,
		ApproximateTilingUnit:            c.approximant.ApproximateLattices[l],
		TilingUnitSupercellMatrix:        c.approximant.IntegerTransformations[l],
		TilingUnitSupercellRoundingError: c.approximant.IntegerTransformationErrors[l],
		ApproximationDeformation:         c.approximant.ApproximationDeformations[l],
		Error:                            c.err,
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
