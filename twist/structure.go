// SPDX-License-Identifier: MIT

package twist

import (
	"github.com/cockroachdb/errors"

	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// MoireStructureReport extends a lattice report with the atomic structures
// built from it.
type MoireStructureReport struct {
	MoireLatticeReport

	// TilingUnitStructure is the slab unit put on ApproximateTilingUnit with
	// fractional coordinates held fixed.
	TilingUnitStructure xtal.Structure
	// MoireStructure is TilingUnitStructure tiled by TilingUnitSupercellMatrix.
	MoireStructure xtal.Structure
}

// MoireStructureApproximator lifts the lattice approximants of a
// MoireApproximator to atomic layers of a slab unit.
type MoireStructureApproximator struct {
	*MoireApproximator
	slab xtal.Structure
}

// NewMoireStructureApproximator runs a MoireApproximator on the lattice of
// slab twisted by degrees with a budget of maxLatticeSites.
func NewMoireStructureApproximator(slab xtal.Structure, degrees float64, maxLatticeSites int, opts ...Option) (*MoireStructureApproximator, error) {
	ma, err := NewMoireApproximator(slab.Lattice(), degrees, maxLatticeSites, opts...)
	if err != nil {
		return nil, err
	}
	return &MoireStructureApproximator{MoireApproximator: ma, slab: slab}, nil
}

// StructureReport builds the structures for a lattice report.
//
// Errors:
//   - xtal errors from building the superstructure.
func (msa *MoireStructureApproximator) StructureReport(r MoireLatticeReport) (MoireStructureReport, error) {
	unit := msa.slab.SetLattice(r.ApproximateTilingUnit, xtal.Fractional)
	moire, err := unit.Superstructure(r.TilingUnitSupercellMatrix)
	if err != nil {
		return MoireStructureReport{}, errors.Wrapf(err, "%s layer in %s zone", r.Layer, r.Zone)
	}
	return MoireStructureReport{MoireLatticeReport: r, TilingUnitStructure: unit, MoireStructure: moire}, nil
}

// BestSmallestStructure is BestSmallest followed by StructureReport.
func (msa *MoireStructureApproximator) BestSmallestStructure(z Zone, l Layer, tol float64) (MoireStructureReport, error) {
	return msa.StructureReport(msa.BestSmallest(z, l, tol))
}

// BestOfEachSizeStructure is BestOfEachSize followed by StructureReport.
func (msa *MoireStructureApproximator) BestOfEachSizeStructure(z Zone, l Layer) ([]MoireStructureReport, error) {
	reports := msa.BestOfEachSize(z, l)
	out := make([]MoireStructureReport, 0, len(reports))
	for _, r := range reports {
		sr, err := msa.StructureReport(r)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, nil
}

// Layer returns the periodic, deformed atomic layer l of zone z, picked by
// BestSmallest with the WithMinimumImprovement margin.
func (msa *MoireStructureApproximator) Layer(z Zone, l Layer) (xtal.Structure, error) {
	sr, err := msa.BestSmallestStructure(z, l, msa.opts.minimumImprovement)
	if err != nil {
		return xtal.Structure{}, err
	}
	return sr.MoireStructure, nil
}

// Bilayer stacks the Aligned layer under the Rotated layer of zone z.
// Both layers come from the same approximant, so they share the ab-plane.
func (msa *MoireStructureApproximator) Bilayer(z Zone) (xtal.Structure, error) {
	layers := make([]xtal.Structure, 0, len(Layers))
	for _, l := range Layers {
		s, err := msa.Layer(z, l)
		if err != nil {
			return xtal.Structure{}, err
		}
		layers = append(layers, s)
	}
	bilayer, err := xtal.Stack(layers)
	if err != nil {
		return xtal.Structure{}, errors.Wrapf(err, "%s zone bilayer", z)
	}
	return bilayer, nil
}
