// Package loader reads models from STL files or OpenSCAD sources.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshnote/internal/logging"
	"github.com/philipparndt/meshnote/pkg/openscad"
	"github.com/philipparndt/meshnote/pkg/stl"
)

// ErrUnsupportedFile is returned for extensions other than .stl and .scad
var ErrUnsupportedFile = errors.New("unsupported file type")

// Source is a loaded model together with the files it was built from
type Source struct {
	Path     string
	Model    *stl.Model
	OpenSCAD bool
	// Files lists every file whose change invalidates Model
	Files []string
}

// Load reads path. OpenSCAD sources are rendered to a temporary STL that is
// removed again once parsed.
func Load(ctx context.Context, path string, logger logging.Logger) (*Source, error) {
	logger = logging.OrNop(logger)

	var (
		src *Source
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		src, err = loadSTL(path)
	case ".scad":
		src, err = loadSCAD(ctx, path, logger)
	default:
		return nil, fmt.Errorf("%w: %q (expected .stl or .scad)", ErrUnsupportedFile, ext)
	}
	if err != nil {
		return nil, err
	}

	src.Model.RecomputeNormals()
	if n := src.Model.DegenerateCount(); n > 0 {
		logger.Warnf("%s: %d degenerate triangle(s) cannot be picked", path, n)
	}
	logger.Debugf("loaded %s: %d triangles", path, src.Model.TriangleCount())
	return src, nil
}

func loadSTL(path string) (*Source, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL file: %w", err)
	}
	return &Source{Path: path, Model: model, Files: []string{path}}, nil
}

func loadSCAD(ctx context.Context, path string, logger logging.Logger) (*Source, error) {
	renderer := openscad.NewRenderer(filepath.Dir(path), logger)

	deps, err := renderer.ResolveDependencies(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "meshnote-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary STL: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	logger.Infof("rendering OpenSCAD file %s", path)
	if err := renderer.RenderToSTL(ctx, path, tmp.Name()); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	if model.Name == "" {
		model.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &Source{Path: path, Model: model, OpenSCAD: true, Files: deps}, nil
}
