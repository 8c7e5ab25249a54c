// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goirijo/casm-utilities-sub000/twist"
)

func newBilayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bilayer",
		Short: "Write the atomic bilayer of the chosen approximant as YAML",
		Long: `Pick the smallest approximant within the configured tolerance, deform
both layers of the slab onto it and stack the rotated layer on top of the
aligned one. The result (lattice and cartesian sites) is written as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRun(cmd)
			if err != nil {
				return err
			}
			if len(r.cfg.Sites) == 0 {
				return errors.New("bilayer: configuration has no sites")
			}
			zone, err := r.cfg.ZoneValue()
			if err != nil {
				return err
			}
			slab, err := r.cfg.BuildSlab()
			if err != nil {
				return err
			}
			search, err := twist.NewMoireStructureApproximator(slab, r.cfg.Angle, r.cfg.Budget, r.options()...)
			if err != nil {
				return err
			}
			bilayer, err := search.Bilayer(zone)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), structureRecord{
				Angle:   r.cfg.Angle,
				Zone:    zone,
				Lattice: newLatticeRecord(bilayer.Lattice()),
				Sites:   bilayer.Sites(),
			})
		},
	}
	cmd.Flags().String("zone", "", "Brillouin zone of the Moiré lattice: aligned or rotated (overrides config)")
	return cmd
}
