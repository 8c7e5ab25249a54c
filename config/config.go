// SPDX-License-Identifier: MIT

package config

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/goirijo/casm-utilities-sub000/matrix"
	"github.com/goirijo/casm-utilities-sub000/twist"
	"github.com/goirijo/casm-utilities-sub000/xtal"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TWIST"

// Output formats understood by the CLI.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

// Coordinate modes of Config.Coordinates.
const (
	CoordinatesFractional = "fractional"
	CoordinatesCartesian  = "cartesian"
)

// Config is one run of the Moiré search.
type Config struct {
	Lattice LatticeConfig `mapstructure:"lattice"`
	Sites   []SiteConfig  `mapstructure:"sites"`
	// Coordinates tells how Sites are given: fractional or cartesian.
	Coordinates string `mapstructure:"coordinates"`

	// Angle is the twist in degrees.
	Angle float64 `mapstructure:"angle"`
	// Budget is the maximum number of lattice sites of an approximant.
	Budget int `mapstructure:"budget"`
	// Tolerance is the BestSmallest improvement margin.
	Tolerance float64 `mapstructure:"tolerance"`
	// Workers bounds concurrent candidate evaluation; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// Zone selects the Brillouin zone used for structures.
	Zone string `mapstructure:"zone"`
	// Output is table or yaml.
	Output string `mapstructure:"output"`
}

// LatticeConfig holds the three lattice vectors in Cartesian coordinates.
type LatticeConfig struct {
	A []float64 `mapstructure:"a"`
	B []float64 `mapstructure:"b"`
	C []float64 `mapstructure:"c"`
}

// SiteConfig is one basis site of the slab.
type SiteConfig struct {
	Coord []float64 `mapstructure:"coord"`
	Label string    `mapstructure:"label"`
}

// SetDefaults registers the default of every key. Keys without a default
// are invisible to environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("coordinates", CoordinatesFractional)
	v.SetDefault("angle", 0.0)
	v.SetDefault("budget", 0)
	v.SetDefault("tolerance", 1e-8)
	v.SetDefault("workers", 0)
	v.SetDefault("zone", twist.Aligned.String())
	v.SetDefault("output", OutputTable)
}

// New returns a viper instance with defaults and TWIST_* environment
// overrides bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadWithViper decodes a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshal config"), ErrRead)
	}
	return &cfg, nil
}

// LoadFromFile reads path (format from its extension) over the defaults and
// environment overrides. The result is not validated.
func LoadFromFile(path string) (*Config, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read config file %s", path), ErrRead)
	}
	return LoadWithViper(v)
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	for i, vec := range [][]float64{c.Lattice.A, c.Lattice.B, c.Lattice.C} {
		if err := checkVector(vec); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "lattice.%c: %v", 'a'+i, err)
		}
	}
	for i, s := range c.Sites {
		if err := checkVector(s.Coord); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "sites[%d].coord: %v", i, err)
		}
	}
	if c.Coordinates != CoordinatesFractional && c.Coordinates != CoordinatesCartesian {
		return errors.Wrapf(ErrInvalidConfig, "coordinates must be %q or %q, got %q", CoordinatesFractional, CoordinatesCartesian, c.Coordinates)
	}
	if math.IsNaN(c.Angle) || math.IsInf(c.Angle, 0) {
		return errors.Wrapf(ErrInvalidConfig, "angle must be finite, got %g", c.Angle)
	}
	if c.Budget < 0 {
		return errors.Wrapf(ErrInvalidConfig, "budget must be >= 0, got %d", c.Budget)
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return errors.Wrapf(ErrInvalidConfig, "tolerance must be finite and >= 0, got %g", c.Tolerance)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be >= 0, got %d", c.Workers)
	}
	if _, err := c.ZoneValue(); err != nil {
		return err
	}
	if c.Output != OutputTable && c.Output != OutputYAML {
		return errors.Wrapf(ErrInvalidConfig, "output must be %q or %q, got %q", OutputTable, OutputYAML, c.Output)
	}
	return nil
}

func checkVector(v []float64) error {
	if len(v) != 3 {
		return errors.Newf("want 3 components, got %d", len(v))
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Newf("non-finite component %g", x)
		}
	}
	return nil
}

func vec3(v []float64) matrix.Vec3 { return matrix.Vec3{v[0], v[1], v[2]} }

// ZoneValue parses Zone.
func (c *Config) ZoneValue() (twist.Zone, error) {
	for _, z := range twist.Zones {
		if strings.EqualFold(c.Zone, z.String()) {
			return z, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "zone must be %q or %q, got %q", twist.Aligned, twist.Rotated, c.Zone)
}

// BuildLattice turns the lattice section into an xtal.Lattice.
// Call Validate first.
func (c *Config) BuildLattice() (xtal.Lattice, error) {
	return xtal.NewLattice(vec3(c.Lattice.A), vec3(c.Lattice.B), vec3(c.Lattice.C))
}

// BuildSlab turns the lattice and sites sections into a slab structure.
// Call Validate first.
func (c *Config) BuildSlab() (xtal.Structure, error) {
	lat, err := c.BuildLattice()
	if err != nil {
		return xtal.Structure{}, err
	}
	sites := make([]xtal.Site, 0, len(c.Sites))
	for _, s := range c.Sites {
		coord := vec3(s.Coord)
		if c.Coordinates == CoordinatesFractional {
			coord = lat.CartCoords(coord)
		}
		sites = append(sites, xtal.Site{Coord: coord, Label: s.Label})
	}
	return xtal.NewStructure(lat, sites), nil
}

// Options returns the twist options the run asks for. Call Validate first;
// the option constructors panic on the values it rejects.
func (c *Config) Options() []twist.Option {
	return []twist.Option{
		twist.WithWorkers(c.Workers),
		twist.WithMinimumImprovement(c.Tolerance),
	}
}
