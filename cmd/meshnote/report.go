package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/pkg/analysis"
)

func printReport(out io.Writer, report *analysis.AnnotationReport) {
	if len(report.Points) > 0 {
		fmt.Fprintln(out, "Points:")
		for i, p := range report.Points {
			fmt.Fprintf(out, "  #%d %s\n", i+1, analysis.FormatVector(p))
		}
	}

	if len(report.Lines) > 0 {
		fmt.Fprintln(out, "Lines:")
		for i, l := range report.Lines {
			fmt.Fprintf(out, "  #%d %s (%d points)\n", i+1, measurement.FormatLength(l.Length), l.Points)
			for j, s := range l.Segments {
				fmt.Fprintf(out, "      segment %d: %.6f\n", j+1, s)
			}
		}
	}

	if len(report.Polygons) > 0 {
		fmt.Fprintln(out, "Polygons:")
		for i, p := range report.Polygons {
			fmt.Fprintf(out, "  #%d %s (%d points, perimeter %.6f, planarity %.6f)\n",
				i+1, measurement.FormatArea(p.Area), p.Points, p.Perimeter, p.Planarity)
			if p.Degenerate {
				fmt.Fprintln(out, "      warning: points do not span a plane")
			}
		}
	}

	fmt.Fprintf(out, "Total length: %.6f\n", report.TotalLength)
	fmt.Fprintf(out, "Total area: %.6f\n", report.TotalArea)
	if report.InProgress > 0 {
		fmt.Fprintf(out, "Unfinished %s: %d point(s)\n", report.Mode, report.InProgress)
	}
}
