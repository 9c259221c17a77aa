package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/internal/loader"
	"github.com/philipparndt/meshnote/pkg/geometry"
)

// parseVector parses "x,y,z"
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid vector %q: want x,y,z", s)
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func parseVectors(values []string) ([]geometry.Vector3, error) {
	points := make([]geometry.Vector3, 0, len(values))
	for _, v := range values {
		p, err := parseVector(v)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// loadSource reads an STL file or renders an OpenSCAD source
func loadSource(cmd *cobra.Command, root *rootOptions, filename string) (*loader.Source, error) {
	src, err := loader.Load(cmd.Context(), filename, root.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return src, nil
}
