// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"math"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/goirijo/casm-utilities-sub000/config"
	"github.com/goirijo/casm-utilities-sub000/twist"
)

func newMoireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moire",
		Short: "Print the exact Moiré geometry of the twist",
		Long: `Align the configured lattice, twist a copy of it and print both Moiré
lattices (one per Brillouin zone), whether the twist is a symmetry of the
layer, and how many layer cells the smallest approximant needs.`,
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
			search, err := twist.NewMoireApproximator(lat, r.cfg.Angle, 0, r.options()...)
			if err != nil {
				return err
			}
			rec := newMoireRecord(search)
			if r.cfg.Output == config.OutputYAML {
				return writeYAML(cmd.OutOrStdout(), rec)
			}
			return renderMoire(cmd, rec)
		},
	}
}

func renderMoire(cmd *cobra.Command, rec moireRecord) error {
	data := pterm.TableData{{"Zone", "|a|", "|b|", "γ (°)", "Degenerate", "Overlap", "Min sites"}}
	for _, z := range rec.Zones {
		a, b := z.MoireLattice.A, z.MoireLattice.B
		data = append(data, []string{
			z.Zone.String(),
			fmt.Sprintf("%.4f", a.Norm()),
			fmt.Sprintf("%.4f", b.Norm()),
			fmt.Sprintf("%.3f", angleDegrees(a.Dot(b), a.Norm()*b.Norm())),
			fmt.Sprintf("%t", z.Degenerate),
			fmt.Sprintf("%t %t", z.Overlap[0], z.Overlap[1]),
			fmt.Sprintf("%d", z.MinimumLatticeSites),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Twist %g°, commensurate: %t\n%s\n", rec.Angle, rec.FullOverlap, table)
	return nil
}

// angleDegrees returns acos(dot/norms) in degrees, clamped against rounding.
func angleDegrees(dot, norms float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, dot/norms))) * 180 / math.Pi
}
