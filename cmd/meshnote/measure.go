package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/annotation"
)

type measureOptions struct {
	points []string
}

func newMeasureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Measure a polyline length or a polygon area from explicit points",
	}
	cmd.AddCommand(
		newMeasureShapeCmd(annotation.ModeLine, "Measure the length of a polyline"),
		newMeasureShapeCmd(annotation.ModePolygon, "Measure the area of a closed polygon on its best-fit plane"),
	)
	return cmd
}

func newMeasureShapeCmd(mode annotation.Mode, short string) *cobra.Command {
	opts := &measureOptions{}

	cmd := &cobra.Command{
		Use:   mode.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, mode, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.points, "point", "p", nil, "Point as x,y,z (repeat for every vertex)")
	return cmd
}

func runMeasure(cmd *cobra.Command, mode annotation.Mode, opts *measureOptions) error {
	points, err := parseVectors(opts.points)
	if err != nil {
		return err
	}

	session := annotation.NewSession(annotation.WithMode(mode))
	for _, p := range points {
		session.Pick(p)
	}
	if !session.Finalize() {
		return fmt.Errorf("a %s needs more points, got %d", mode, len(points))
	}

	printReport(cmd.OutOrStdout(), analysis.SummarizeAnnotations(session.Snapshot()))
	return nil
}
