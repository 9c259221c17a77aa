package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/geometry"
)

func TestSummarizeAnnotations(t *testing.T) {
	s := annotation.NewSession(annotation.WithMode(annotation.ModeLine))
	s.Pick(geometry.NewVector3(0, 0, 0))
	s.Pick(geometry.NewVector3(3, 4, 0))
	s.Pick(geometry.NewVector3(3, 4, 1))
	s.Finalize()

	s.SetMode(annotation.ModePolygon)
	for _, p := range []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(2, 2, 0),
		geometry.NewVector3(0, 2, 0),
	} {
		s.Pick(p)
	}
	s.Finalize()
	for _, p := range []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(2, 0, 0),
	} {
		s.Pick(p)
	}
	s.Finalize()
	s.Pick(geometry.NewVector3(5, 5, 5))

	report := SummarizeAnnotations(s.Snapshot())

	if len(report.Lines) != 1 || len(report.Polygons) != 2 {
		t.Fatalf("Expected 1 line and 2 polygons, got %d and %d", len(report.Lines), len(report.Polygons))
	}
	if math.Abs(report.TotalLength-6) > 1e-10 {
		t.Errorf("Expected total length 6, got %f", report.TotalLength)
	}
	if len(report.Lines[0].Segments) != 2 {
		t.Errorf("Expected 2 segments, got %d", len(report.Lines[0].Segments))
	}
	if math.Abs(report.TotalArea-4) > 1e-10 {
		t.Errorf("Expected total area 4, got %f", report.TotalArea)
	}
	if report.Polygons[0].Degenerate || !report.Polygons[1].Degenerate {
		t.Errorf("Expected only the collinear polygon to be degenerate")
	}
	if math.Abs(report.Polygons[0].Perimeter-8) > 1e-10 {
		t.Errorf("Expected perimeter 8, got %f", report.Polygons[0].Perimeter)
	}
	if st := report.Lines[0].SegmentStats; st.Count != 2 || st.Min != 1 || st.Max != 5 || math.Abs(st.Mean()-3) > 1e-10 {
		t.Errorf("Unexpected segment stats %+v", st)
	}
	if report.Segments.Count != 2 || math.Abs(report.Segments.Total-report.TotalLength) > 1e-10 {
		t.Errorf("Expected snapshot segment stats to match the lines, got %+v", report.Segments)
	}
	if st := report.Polygons[0].EdgeStats; st.Count != 4 || math.Abs(st.Total-report.Polygons[0].Perimeter) > 1e-10 {
		t.Errorf("Expected 4 outline edges totalling the perimeter, got %+v", st)
	}
	if report.InProgress != 1 {
		t.Errorf("Expected 1 in-progress point, got %d", report.InProgress)
	}
}
