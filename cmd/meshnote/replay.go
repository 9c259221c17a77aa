package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshnote/internal/measurement"
	"github.com/philipparndt/meshnote/internal/replay"
	"github.com/philipparndt/meshnote/pkg/analysis"
	"github.com/philipparndt/meshnote/pkg/annotation"
	"github.com/philipparndt/meshnote/pkg/picker"
	"github.com/philipparndt/meshnote/pkg/viewer"
	"github.com/philipparndt/meshnote/pkg/watcher"
)

type replayOptions struct {
	root   *rootOptions
	mode   string
	color  string
	png    string
	width  int
	height int
	watch  bool
	strict bool
	snap   float64

	lightIntensity float64
	lightColor     string
}

func newReplayCmd(root *rootOptions) *cobra.Command {
	opts := &replayOptions{root: root}

	cmd := &cobra.Command{
		Use:   "replay [model.stl] [script.yaml]",
		Short: "Replay an annotation script against a model",
		Long: `Replay picks, pointer moves, mode changes and finalize gestures from a YAML
script, print the resulting measurements and optionally render them to PNG.
With --watch the replay reruns whenever the model or the script changes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runReplay(ctx, cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "Initial mode (point, line, polygon), overrides the script")
	cmd.Flags().StringVar(&opts.color, "color", "", "Initial draw color (#rrggbb or CSS name), overrides the script")
	cmd.Flags().StringVar(&opts.png, "png", "", "Render the annotated model to this PNG file")
	cmd.Flags().IntVar(&opts.width, "width", 1024, "PNG width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 768, "PNG height in pixels")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Rerun when the model or script changes")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Ignore finalize for polygons whose points do not span a plane")
	cmd.Flags().Float64Var(&opts.snap, "snap", 0, "Snap ray picks to mesh vertices within this distance")
	cmd.Flags().Float64Var(&opts.lightIntensity, "light-intensity", viewer.DefaultLight.Intensity,
		fmt.Sprintf("Directional light intensity for --png (0 to %g)", viewer.MaxLightIntensity))
	cmd.Flags().StringVar(&opts.lightColor, "light-color", annotation.FormatColor(viewer.DefaultLight.Color),
		"Directional light color for --png (#rrggbb or CSS name)")
	return cmd
}

func runReplay(ctx context.Context, cmd *cobra.Command, modelPath, scriptPath string, opts *replayOptions) error {
	logger := opts.root.logger

	if !opts.watch {
		_, err := replayOnce(ctx, cmd, modelPath, scriptPath, opts)
		return err
	}

	fw, err := watcher.NewFileWatcher(200*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	changes := make(chan string, 1)
	notify := func(path string) {
		select {
		case changes <- path:
		default:
		}
	}
	watch := func(files []string) {
		if err := fw.Watch(files, notify); err != nil {
			logger.Warnf("%v", err)
		}
	}

	rerun := func() {
		files, err := replayOnce(ctx, cmd, modelPath, scriptPath, opts)
		if err != nil {
			logger.Errorf("%v", err)
		}
		// OpenSCAD sources may have gained includes
		watch(files)
	}

	watch([]string{modelPath, scriptPath})
	fw.Start()
	rerun()
	logger.Infof("watching %s and %s, press Ctrl+C to stop", modelPath, scriptPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changes:
			logger.Infof("%s changed, replaying", path)
			rerun()
		}
	}
}

// replayOnce runs the script and returns the files the result depends on
func replayOnce(ctx context.Context, cmd *cobra.Command, modelPath, scriptPath string, opts *replayOptions) ([]string, error) {
	logger := opts.root.logger

	src, err := loadSource(cmd, opts.root, modelPath)
	if err != nil {
		return nil, err
	}
	files := append([]string{scriptPath}, src.Files...)
	model := src.Model

	script, err := replay.Load(scriptPath)
	if err != nil {
		return files, err
	}
	if opts.mode != "" {
		script.Mode = opts.mode
	}
	if opts.color != "" {
		script.DrawColor = opts.color
	}

	sessionOpts := []annotation.Option{
		annotation.WithLogger(logger),
		annotation.WithDegeneratePolygonRejection(opts.strict),
	}
	if opts.snap > 0 {
		sessionOpts = append(sessionOpts, annotation.WithSnapper(analysis.NewVertexSnapper(model, opts.snap)))
	}
	session := annotation.NewSession(sessionOpts...)
	if err := script.Run(ctx, session, picker.NewMeshPicker(model), logger); err != nil {
		return files, fmt.Errorf("%s: %w", scriptPath, err)
	}

	snapshot := session.Snapshot()
	printReport(cmd.OutOrStdout(), analysis.SummarizeAnnotations(snapshot))

	if opts.png == "" {
		return files, nil
	}
	if opts.width <= 0 || opts.height <= 0 {
		return files, fmt.Errorf("invalid image size %dx%d", opts.width, opts.height)
	}
	light, err := opts.light()
	if err != nil {
		return files, err
	}
	img := viewer.RenderImage(model, measurement.Build(snapshot), viewer.NewCamera(model.BoundingBox()),
		opts.width, opts.height, viewer.WithLight(light))
	if err := viewer.WritePNG(opts.png, img); err != nil {
		return files, err
	}
	logger.Infof("wrote %s", opts.png)
	return files, nil
}

func (o *replayOptions) light() (viewer.Light, error) {
	c, err := annotation.ParseColor(o.lightColor)
	if err != nil {
		return viewer.Light{}, fmt.Errorf("--light-color: %w", err)
	}
	light := viewer.Light{Intensity: o.lightIntensity, Color: c}
	if err := light.Validate(); err != nil {
		return viewer.Light{}, fmt.Errorf("--light-intensity: %w", err)
	}
	return light, nil
}
