package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/optoclinic-api/internal/optics"
)

func newKeratometryCommand() *cobra.Command {
	var mm, diopters float64

	cmd := &cobra.Command{
		Use:   "keratometry",
		Short: "Convert between corneal radius and keratometric power",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case cmd.Flags().Changed("mm"):
				fmt.Fprintf(out, "%.2f D\n", optics.MMToDiopters(mm))
			case cmd.Flags().Changed("diopters"):
				fmt.Fprintf(out, "%.2f mm\n", optics.DioptersToMM(diopters))
			default:
				return errors.New("one of --mm or --diopters is required")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&mm, "mm", 0, "corneal radius in millimetres")
	cmd.Flags().Float64Var(&diopters, "diopters", 0, "keratometric power in diopters")
	cmd.MarkFlagsMutuallyExclusive("mm", "diopters")

	return cmd
}

func newContactLensCommand() *cobra.Command {
	var (
		rx     optics.Rx
		vertex float64
	)

	cmd := &cobra.Command{
		Use:   "contact-lens",
		Short: "Convert a spectacle prescription to contact lens power",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rx.Axis < optics.MinAxis || rx.Axis > optics.MaxAxis {
				return fmt.Errorf("axis %d out of range 0-180", rx.Axis)
			}
			cl := optics.SpectacleToContactLens(rx, vertex)
			fmt.Fprintf(cmd.OutOrStdout(), "%+.2f %+.2f x %d\n", cl.Sphere, cl.Cylinder, cl.Axis)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&rx.Sphere, "sphere", 0, "spectacle sphere in diopters")
	flags.Float64Var(&rx.Cylinder, "cylinder", 0, "spectacle cylinder in diopters")
	flags.IntVar(&rx.Axis, "axis", 0, "cylinder axis in TABO degrees")
	flags.Float64Var(&vertex, "vertex", optics.DefaultVertexDistanceMM, "vertex distance in millimetres")

	return cmd
}
