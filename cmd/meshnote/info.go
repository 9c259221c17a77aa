package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/picker"
)

func newInfoCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Display general information about an STL file",
		Long:  "Show dimensions, triangle count, surface area, edge statistics and the picking hierarchy built for the model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, root, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, root *rootOptions, filename string) error {
	src, err := loadSource(cmd, root, filename)
	if err != nil {
		return err
	}
	model := src.Model

	result := analysis.AnalyzeModel(model)
	stats := picker.NewMeshPicker(model).Stats()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n", filename)
	if src.OpenSCAD {
		fmt.Fprintf(out, "Rendered from %d OpenSCAD file(s)\n", len(src.Files))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Degenerate: %d\n", model.DegenerateCount())
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeStats.Count)
	fmt.Fprintf(out, "  Open Edges: %d\n", result.OpenEdges)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.EdgeStats.Min)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.EdgeStats.Max)
	fmt.Fprintf(out, "  Average: %.6f units\n\n", result.EdgeStats.Mean())

	fmt.Fprintln(out, "Picking Hierarchy:")
	fmt.Fprintf(out, "  Nodes: %d\n", stats.Nodes)
	fmt.Fprintf(out, "  Leaves: %d\n", stats.Leaves)
	fmt.Fprintf(out, "  Depth: %d\n", stats.Depth)
	return nil
}
