// SPDX-License-Identifier: MIT

package twist

// Layer tags one of the two constituent lattices of the bilayer.
type Layer int

// Zone tags the Brillouin zone the reciprocal difference was folded into.
// It shares its two values with Layer: the zone of a layer is that layer's
// first Brillouin zone.
type Zone = Layer

const (
	// Aligned is the input lattice after alignment (a ∥ x, b in xy, c ∥ z).
	Aligned Layer = iota
	// Rotated is Aligned twisted by the requested angle about z.
	Rotated
)

// Layers lists both tags in canonical order; Zones is the same list.
var (
	Layers = [2]Layer{Aligned, Rotated}
	Zones  = Layers
)

// Other returns the opposite tag.
func (l Layer) Other() Layer { return 1 - l }

// String implements fmt.Stringer.
func (l Layer) String() string {
	switch l {
	case Aligned:
		return "aligned"
	case Rotated:
		return "rotated"
	default:
		return "unknown"
	}
}

// MarshalYAML writes the tag by name.
func (l Layer) MarshalYAML() (interface{}, error) { return l.String(), nil }
