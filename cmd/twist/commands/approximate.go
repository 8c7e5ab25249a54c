// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goirijo/casm-utilities-sub000/config"
	"github.com/goirijo/casm-utilities-sub000/twist"
)

func newApproximateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approximate",
		Short: "Search the best periodic approximant within the budget",
		Long: `Enumerate supercells of the Moiré lattice up to the lattice-site budget
and report, for every zone and layer, the smallest approximant whose error
is within the configured tolerance of the best one.

With --each-size the best approximant of every supercell size is listed
instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRun(cmd)
			if err != nil {
				return err
			}
			lat, err := r.cfg.BuildLattice()
			if err != nil {
				return err
			}
			search, err := twist.NewMoireApproximator(lat, r.cfg.Angle, r.cfg.Budget, r.options()...)
			if err != nil {
				return err
			}

			eachSize, _ := cmd.Flags().GetBool("each-size")
			var records []approximantRecord
			for _, z := range twist.Zones {
				for _, l := range twist.Layers {
					reports := []twist.MoireLatticeReport{search.BestSmallest(z, l, r.cfg.Tolerance)}
					if eachSize {
						reports = search.BestOfEachSize(z, l)
					}
					for _, rep := range reports {
						rec, err := newApproximantRecord(rep, r.options()...)
						if err != nil {
							return err
						}
						records = append(records, rec)
					}
				}
			}

			if r.cfg.Output == config.OutputYAML {
				return writeYAML(cmd.OutOrStdout(), records)
			}
			return renderApproximants(cmd, records)
		},
	}
	cmd.Flags().Bool("each-size", false, "list the best approximant of every supercell size")
	return cmd
}

func renderApproximants(cmd *cobra.Command, records []approximantRecord) error {
	data := pterm.TableData{{"Zone", "Layer", "Moiré cells", "Layer cells", "Error", "Rotation (°)", "Dilation", "Deviatoric"}}
	for _, rec := range records {
		data = append(data, []string{
			rec.Zone.String(),
			rec.Layer.String(),
			fmt.Sprintf("%d", rec.TrueMoireSupercellMatrix.Det()),
			fmt.Sprintf("%d", rec.TilingUnitSupercellMatrix.Det()),
			fmt.Sprintf("%.3e", rec.Error),
			fmt.Sprintf("%.4f", rec.RotationAngle),
			fmt.Sprintf("%.3e", rec.DilationStrain),
			fmt.Sprintf("%.3e", rec.DeviatoricStrain),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
