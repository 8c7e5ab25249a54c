// SPDX-License-Identifier: MIT

package commands

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/twist"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

type latticeRecord struct {
	A matrix.Vec3 `yaml:"a,flow"`
	B matrix.Vec3 `yaml:"b,flow"`
	C matrix.Vec3 `yaml:"c,flow"`
}

func newLatticeRecord(l xtal.Lattice) latticeRecord {
	return latticeRecord{A: l.A(), B: l.B(), C: l.C()}
}

type zoneRecord struct {
	Zone                 twist.Zone    `yaml:"zone"`
	MoireLattice         latticeRecord `yaml:"moire_lattice"`
	ReciprocalDifference [2][2]float64 `yaml:"reciprocal_difference,flow"`
	Degenerate           bool          `yaml:"degenerate"`
	Overlap              [2]bool       `yaml:"within_brillouin_zone_overlap,flow"`
	MinimumLatticeSites  int           `yaml:"minimum_lattice_sites"`
}

type moireRecord struct {
	Angle          float64       `yaml:"angle"`
	AlignedLattice latticeRecord `yaml:"aligned_lattice"`
	RotatedLattice latticeRecord `yaml:"rotated_lattice"`
	FullOverlap    bool          `yaml:"full_overlap"`
	Zones          []zoneRecord  `yaml:"zones"`
}

func newMoireRecord(search *twist.MoireApproximator) moireRecord {
	ml := search.Geometry()
	rec := moireRecord{
		Angle:          ml.InputDegrees,
		AlignedLattice: newLatticeRecord(ml.AlignedLattice),
		RotatedLattice: newLatticeRecord(ml.RotatedLattice),
		FullOverlap:    ml.FullOverlap(),
	}
	for _, z := range twist.Zones {
		rec.Zones = append(rec.Zones, zoneRecord{
			Zone:                 z,
			MoireLattice:         newLatticeRecord(ml.Moire(z)),
			ReciprocalDifference: ml.BrillouinZoneReciprocalDifference[z],
			Degenerate:           ml.Degenerate[z],
			Overlap:              ml.IsWithinBrillouinZoneOverlap[z],
			MinimumLatticeSites:  search.MinimumLatticeSites(z),
		})
	}
	return rec
}

type approximantRecord struct {
	twist.MoireLatticeReport `yaml:",inline"`

	TrueMoireLattice        latticeRecord `yaml:"true_moire_lattice"`
	ApproximateMoireLattice latticeRecord `yaml:"approximate_moire_lattice"`
	TilingUnitLattice       latticeRecord `yaml:"approximate_tiling_unit"`
	RotationAngle           float64       `yaml:"rotation_angle"`
	DilationStrain          float64       `yaml:"dilation_strain"`
	DeviatoricStrain        float64       `yaml:"deviatoric_strain"`
}

func newApproximantRecord(r twist.MoireLatticeReport, opts ...twist.Option) (approximantRecord, error) {
	d, err := r.Deformation(opts...)
	if err != nil {
		return approximantRecord{}, errors.Wrapf(err, "%s layer in %s zone", r.Layer, r.Zone)
	}
	return approximantRecord{
		MoireLatticeReport:      r,
		TrueMoireLattice:        newLatticeRecord(r.TrueMoire),
		ApproximateMoireLattice: newLatticeRecord(r.ApproximateMoire),
		TilingUnitLattice:       newLatticeRecord(r.ApproximateTilingUnit),
		RotationAngle:           d.RotationAngle,
		DilationStrain:          d.DilationStrain,
		DeviatoricStrain:        d.DeviatoricStrain,
	}, nil
}

type structureRecord struct {
	Angle   float64       `yaml:"angle"`
	Zone    twist.Zone    `yaml:"zone"`
	Lattice latticeRecord `yaml:"lattice"`
	Sites   []xtal.Site   `yaml:"sites"`
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
