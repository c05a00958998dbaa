package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/loaders"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		printHelp(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Tracer")
	fmt.Fprintln(w, "Usage: sphere-tracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	config.Usage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-11s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>.json - Scene file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables TRACER_SCENE, TRACER_OUTPUT, TRACER_WIDTH, TRACER_SAMPLES,")
	fmt.Fprintln(w, "TRACER_DEPTH and TRACER_SEED set defaults for the matching options.")
}

// run renders according to args. Images for "-" go to stdout; progress goes to stderr.
func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	var logger core.Logger = log.New(stderr, "", 0)
	if cfg.Quiet {
		logger = renderer.NopLogger{}
	}

	if cfg.Pattern {
		sink, err := openSink(cfg.Output, stdout)
		if err != nil {
			return err
		}
		size := config.DefaultPatternSize
		if cfg.Width > 0 {
			size = cfg.Width
		}
		return writePattern(sink, size)
	}

	random := cfg.Random()
	selected, err := createScene(cfg.Scene, random)
	if err != nil {
		return err
	}

	camera := selected.NewCamera(random)
	cameraConfig := cfg.ApplyTo(camera.Config())
	if err := cameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", selected.Name, err)
	}
	camera.SetConfig(cameraConfig)
	camera.SetLogger(logger)

	sink, err := openSink(cfg.Output, stdout)
	if err != nil {
		return err
	}

	logger.Printf("Rendering scene %q (%d objects)\n", selected.Name, selected.SphereCount())

	stats, renderErr := camera.Render(selected.World, sink)
	closeErr := sink.Close()
	if renderErr != nil {
		return errors.Join(renderErr, closeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("finish output: %w", closeErr)
	}

	logger.Printf("Image: %dx%d, %d samples per pixel (%.0f samples/s)\n",
		stats.Width, stats.Height, stats.SamplesPerPixel, stats.SamplesPerSecond())
	if cfg.Output != config.StdoutOutput {
		logger.Printf("Render saved as %s\n", cfg.Output)
	}
	return nil
}

// createScene builds a built-in scene or loads a .json scene file
func createScene(name string, random core.Random) (*scene.Scene, error) {
	if loaders.IsSceneFile(name) {
		return loaders.LoadScene(name)
	}
	return scene.New(name, random)
}

// writePattern writes the size×size test pattern and closes the sink
func writePattern(sink output.Sink, size int) error {
	if err := output.WriteTestPattern(sink, size, size); err != nil {
		return errors.Join(fmt.Errorf("write test pattern: %w", err), sink.Close())
	}
	return sink.Close()
}

func openSink(path string, stdout io.Writer) (output.Sink, error) {
	if path == config.StdoutOutput {
		return output.NewPPM(stdout), nil
	}
	return output.Create(path)
}
