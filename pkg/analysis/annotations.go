package analysis

import (
	"github.com/google/uuid"

	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/geometry"
)

// LineReport describes one finalized line
type LineReport struct {
	ID       uuid.UUID
	Points   int
	Length   float64
	Segments []float64
	// SegmentStats summarizes Segments the way ModelResult.EdgeStats
	// summarizes mesh edges
	SegmentStats LengthStats
}

// PolygonReport describes one finalized polygon
type PolygonReport struct {
	ID        uuid.UUID
	Points    int
	Area      float64
	Perimeter float64
	// EdgeStats covers the outline including the closing edge
	EdgeStats LengthStats
	// Planarity is the largest vertex distance from the best-fit plane
	Planarity float64
	// Degenerate is set when the points do not span a plane
	Degenerate bool
}

// AnnotationReport summarizes the annotations of a session snapshot
type AnnotationReport struct {
	Mode        annotation.Mode
	Points      []geometry.Vector3
	Lines       []LineReport
	Polygons    []PolygonReport
	TotalLength float64
	TotalArea   float64
	// Segments summarizes every line segment of the snapshot
	Segments   LengthStats
	InProgress int
}

// SummarizeAnnotations measures every finalized annotation in s
func SummarizeAnnotations(s annotation.Snapshot) *AnnotationReport {
	report := &AnnotationReport{
		Mode:       s.Mode,
		InProgress: len(s.InProgress),
	}

	for _, p := range s.Points {
		report.Points = append(report.Points, p.Position)
	}

	for _, l := range s.Lines {
		lr := LineReport{
			ID:     l.ID,
			Points: len(l.Points),
			Length: l.Length(),
		}
		for i := 0; i+1 < len(l.Points); i++ {
			d := l.Points[i].Distance(l.Points[i+1])
			lr.Segments = append(lr.Segments, d)
			lr.SegmentStats.Add(d)
			report.Segments.Add(d)
		}
		report.Lines = append(report.Lines, lr)
		report.TotalLength += lr.Length
	}

	for _, p := range s.Polygons {
		_, err := geometry.PolygonAreaChecked(p.Points)
		pr := PolygonReport{
			ID:         p.ID,
			Points:     len(p.Points),
			Area:       p.Area(),
			Perimeter:  p.Perimeter(),
			Planarity:  geometry.PolygonPlanarity(p.Points),
			Degenerate: err != nil,
		}
		for i, v := range p.Points {
			pr.EdgeStats.Add(v.Distance(p.Points[(i+1)%len(p.Points)]))
		}
		report.Polygons = append(report.Polygons, pr)
		report.TotalArea += pr.Area
	}

	return report
}
