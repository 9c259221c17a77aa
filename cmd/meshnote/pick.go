package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/picker"
)

type pickOptions struct {
	origin    string
	direction string
}

func newPickCmd(root *rootOptions) *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick [file]",
		Short: "Cast a ray at the model and report the nearest surface hit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, root, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.origin, "origin", "", "Ray origin as x,y,z")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "Ray direction as x,y,z")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}

func runPick(cmd *cobra.Command, root *rootOptions, filename string, opts *pickOptions) error {
	origin, err := parseVector(opts.origin)
	if err != nil {
		return fmt.Errorf("--origin: %w", err)
	}
	direction, err := parseVector(opts.direction)
	if err != nil {
		return fmt.Errorf("--direction: %w", err)
	}
	if direction.Length() == 0 {
		return fmt.Errorf("--direction must not be zero")
	}

	src, err := loadSource(cmd, root, filename)
	if err != nil {
		return err
	}
	model := src.Model

	out := cmd.OutOrStdout()
	hit, ok := picker.NewMeshPicker(model).Pick(picker.NewRay(origin, direction))
	if !ok {
		fmt.Fprintln(out, "no hit")
		return nil
	}

	vertex, vertexDist, _ := analysis.NewVertexSnapper(model, 0).Nearest(hit.Point)
	fmt.Fprintf(out, "Point: %s\n", analysis.FormatVector(hit.Point))
	fmt.Fprintf(out, "Normal: %s\n", analysis.FormatVector(hit.Normal))
	fmt.Fprintf(out, "Distance: %.6f units\n", hit.Distance)
	fmt.Fprintf(out, "Triangle: #%d\n", hit.Triangle)
	fmt.Fprintf(out, "Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(vertex), vertexDist)
	return nil
}
