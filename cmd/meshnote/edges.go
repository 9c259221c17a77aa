package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/pkg/analysis"
)

type edgesOptions struct {
	count     int
	longest   bool
	shortest  bool
	minLength float64
	maxLength float64
}

func newEdgesCmd(root *rootOptions) *cobra.Command {
	opts := &edgesOptions{}

	cmd := &cobra.Command{
		Use:   "edges [file]",
		Short: "List mesh edges by length",
		Long:  "List the longest or shortest edges of a model, or the edges within a length range.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdges(cmd, root, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 10, "Number of edges to display")
	cmd.Flags().BoolVarP(&opts.longest, "longest", "l", false, "Show longest edges")
	cmd.Flags().BoolVarP(&opts.shortest, "shortest", "s", false, "Show shortest edges")
	cmd.Flags().Float64Var(&opts.minLength, "min", 0.0, "Minimum edge length filter")
	cmd.Flags().Float64Var(&opts.maxLength, "max", 0.0, "Maximum edge length filter")
	cmd.MarkFlagsMutuallyExclusive("longest", "shortest")
	return cmd
}

func runEdges(cmd *cobra.Command, root *rootOptions, filename string, opts *edgesOptions) error {
	src, err := loadSource(cmd, root, filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeModel(src.Model)

	var edges []analysis.Edge
	var title string

	switch {
	case opts.longest:
		edges = result.LongestEdges(opts.count)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case opts.shortest:
		edges = result.ShortestEdges(opts.count)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case opts.maxLength > 0:
		edges = result.EdgesBetween(opts.minLength, opts.maxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", opts.minLength, opts.maxLength, len(edges))
	default:
		edges = result.Edges
		title = fmt.Sprintf("All Edges (%d)", len(edges))
	}
	if len(edges) > opts.count {
		edges = edges[:opts.count]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Min edge length: %.6f units\n", result.EdgeStats.Min)
	fmt.Fprintf(out, "Max edge length: %.6f units\n", result.EdgeStats.Max)
	fmt.Fprintf(out, "Avg edge length: %.6f units\n", result.EdgeStats.Mean())
	fmt.Fprintf(out, "Open edges: %d\n\n", result.OpenEdges)

	if len(edges) == 0 {
		fmt.Fprintln(out, "No edges found matching the criteria.")
		return nil
	}

	fmt.Fprintf(out, "%-6s %-35s %-35s %-15s %s\n", "Index", "Start", "End", "Length", "Triangles")
	for i, edge := range edges {
		fmt.Fprintf(out, "%-6d %-35s %-35s %-15.6f %d\n",
			i+1,
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length,
			len(edge.Triangles))
	}
	return nil
}
