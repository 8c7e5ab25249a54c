// SPDX-License-Identifier: MIT

package xtal

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/goirijo/casm-utilities-sub000/matrix"
)

// CoordMode selects which coordinates SetLattice holds fixed.
type CoordMode int

const (
	// Fractional keeps fractional coordinates, so sites move with the lattice.
	Fractional CoordMode = iota
	// Cartesian keeps cartesian coordinates, so sites stay put.
	Cartesian
)

// fracWrapTol absorbs rounding when wrapping fractional coordinates into [0, 1).
const fracWrapTol = 1e-8

// Site is one atom: a cartesian position and a species label.
type Site struct {
	Coord matrix.Vec3 `yaml:"coord,flow"`
	Label string      `yaml:"label"`
}

// Structure is a lattice decorated with an ordered list of sites.
type Structure struct {
	lattice Lattice
	sites   []Site
}

// NewStructure builds a structure; sites are copied.
func NewStructure(lat Lattice, sites []Site) Structure {
	return Structure{lattice: lat, sites: append([]Site(nil), sites...)}
}

// Lattice returns the structure's lattice.
func (s Structure) Lattice() Lattice { return s.lattice }

// Sites returns a copy of the site list.
func (s Structure) Sites() []Site { return append([]Site(nil), s.sites...) }

// NumSites returns the number of sites.
func (s Structure) NumSites() int { return len(s.sites) }

// FracCoords returns every site position in fractional coordinates.
func (s Structure) FracCoords() []matrix.Vec3 {
	out := make([]matrix.Vec3, len(s.sites))
	for i, site := range s.sites {
		out[i] = s.lattice.FracCoords(site.Coord)
	}
	return out
}

// SetLattice returns a copy of s on lat. In Fractional mode every site keeps
// its fractional coordinates (and is therefore deformed with the lattice);
// in Cartesian mode positions are unchanged.
func (s Structure) SetLattice(lat Lattice, mode CoordMode) Structure {
	out := Structure{lattice: lat, sites: make([]Site, len(s.sites))}
	for i, site := range s.sites {
		if mode == Fractional {
			site.Coord = lat.CartCoords(s.lattice.FracCoords(site.Coord))
		}
		out.sites[i] = site
	}
	return out
}

// Superstructure tiles s into the supercell L·T.
//
// Implementation:
//   - Stage 1: collect every lattice translation n (in units of L) whose
//     fractional coordinates in the supercell lie in [0, 1)³, scanning the
//     bounding box of the supercell corners in fixed order.
//   - Stage 2: for each site (outer) and each translation (inner) place a
//     copy wrapped into the supercell.
//
// The result has |det T|·NumSites() sites, in site-major order.
//
// Errors:
//   - ErrSingularTransform if det T = 0.
//   - ErrTranslationCount if the translation scan disagrees with |det T|.
func (s Structure) Superstructure(t matrix.IMat3) (Structure, error) {
	super, err := s.lattice.Superlattice(t)
	if err != nil {
		return Structure{}, err
	}
	tInv, err := matrix.Inverse(t.Float())
	if err != nil {
		return Structure{}, errors.Wrapf(ErrSingularTransform, "transformation %v", t)
	}

	var lo, hi [3]int
	for corner := 0; corner < 8; corner++ {
		for i := 0; i < 3; i++ {
			x := 0
			for j := 0; j < 3; j++ {
				if corner&(1<<j) != 0 {
					x += t[i][j]
				}
			}
			lo[i] = min(lo[i], x)
			hi[i] = max(hi[i], x)
		}
	}

	want := t.Det()
	if want < 0 {
		want = -want
	}
	translations := make([]matrix.Vec3, 0, want)
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for k := lo[2]; k <= hi[2]; k++ {
				n := matrix.Vec3{float64(i), float64(j), float64(k)}
				if insideUnitCube(matrix.MulVec(tInv, n)) {
					translations = append(translations, n)
				}
			}
		}
	}
	if len(translations) != want {
		return Structure{}, errors.Wrapf(ErrTranslationCount, "found %d translations, want %d", len(translations), want)
	}

	sites := make([]Site, 0, want*len(s.sites))
	for _, site := range s.sites {
		for _, n := range translations {
			coord := site.Coord.Add(s.lattice.CartCoords(n))
			sites = append(sites, Site{Coord: wrapInto(super, coord), Label: site.Label})
		}
	}
	return Structure{lattice: super, sites: sites}, nil
}

// Stack piles layers along their c vectors. Every layer is first put on the
// ab-plane of the bottom layer (keeping its own c) in Fractional mode, then
// shifted up by the sum of the c vectors below it. The stacked lattice is
// (a₀, b₀, Σcᵢ).
//
// Errors:
//   - ErrEmptyStack for an empty list.
//   - ErrSingularLattice if a layer's c lies in the bottom ab-plane.
func Stack(layers []Structure) (Structure, error) {
	if len(layers) == 0 {
		return Structure{}, ErrEmptyStack
	}
	a, b := layers[0].lattice.A(), layers[0].lattice.B()

	var (
		shift matrix.Vec3
		sites []Site
	)
	for i, layer := range layers {
		lat, err := NewLattice(a, b, layer.lattice.C())
		if err != nil {
			return Structure{}, errors.Wrapf(err, "layer %d", i)
		}
		for _, site := range layer.SetLattice(lat, Fractional).sites {
			site.Coord = site.Coord.Add(shift)
			sites = append(sites, site)
		}
		shift = shift.Add(layer.lattice.C())
	}

	lat, err := NewLattice(a, b, shift)
	if err != nil {
		return Structure{}, errors.Wrap(err, "stacked lattice")
	}
	return Structure{lattice: lat, sites: sites}, nil
}

func insideUnitCube(f matrix.Vec3) bool {
	for i := 0; i < 3; i++ {
		if f[i] < -fracWrapTol || f[i] >= 1-fracWrapTol {
			return false
		}
	}
	return true
}

func wrapInto(lat Lattice, cart matrix.Vec3) matrix.Vec3 {
	f := lat.FracCoords(cart)
	for i := 0; i < 3; i++ {
		f[i] -= math.Floor(f[i] + fracWrapTol)
	}
	return lat.CartCoords(f)
}
