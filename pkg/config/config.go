package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const (
	// DefaultScene is the built-in scene rendered when none is named.
	DefaultScene = "playaround"
	// DefaultOutput writes a plain PPM to stdout.
	DefaultOutput = StdoutOutput
	// StdoutOutput is the output name for standard output.
	StdoutOutput = "-"
	// DefaultPatternSize is the width and height of the test pattern.
	DefaultPatternSize = 256

	// DefaultAddr is the address the preview server listens on.
	DefaultAddr = ":8080"
	// DefaultMaxPreviewWidth bounds the image width a preview client may request.
	DefaultMaxPreviewWidth = 800
	// DefaultMaxPreviewSamples bounds the samples per pixel a preview client may request.
	DefaultMaxPreviewSamples = 500
	// DefaultPingInterval controls the keepalive cadence for preview connections.
	DefaultPingInterval = 30 * time.Second
)

// Config captures the settings of a single CLI render.
// Zero Width, Samples and Depth keep the scene's own values.
type Config struct {
	Scene   string // Built-in scene name or path to a .json scene file
	Output  string // Output path; the extension picks the format
	Width   int
	Samples int
	Depth   int
	Seed    int64 // Zero seeds from the clock
	Quiet   bool  // Suppress progress output
	Pattern bool  // Write the gradient test pattern instead of rendering
}

// Load reads the configuration from TRACER_* environment variables and then
// args, so flags win over the environment. Every invalid setting is reported.
func Load(args []string) (*Config, error) {
	cfg := &Config{
		Scene:  getString("TRACER_SCENE", DefaultScene),
		Output: getString("TRACER_OUTPUT", DefaultOutput),
	}

	var problems []string
	parseEnvInt("TRACER_WIDTH", &cfg.Width, &problems)
	parseEnvInt("TRACER_SAMPLES", &cfg.Samples, &problems)
	parseEnvInt("TRACER_DEPTH", &cfg.Depth, &problems)

	if raw := strings.TrimSpace(os.Getenv("TRACER_SEED")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("TRACER_SEED must be an integer, got %q", raw))
		} else {
			cfg.Seed = value
		}
	}

	fs := flagSet(cfg)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		problems = append(problems, err.Error())
	}
	if fs.NArg() > 0 {
		problems = append(problems, fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	if strings.TrimSpace(cfg.Scene) == "" {
		problems = append(problems, "scene must not be empty")
	}
	if cfg.Width < 0 {
		problems = append(problems, fmt.Sprintf("width must not be negative, got %d", cfg.Width))
	}
	if cfg.Samples < 0 {
		problems = append(problems, fmt.Sprintf("samples must not be negative, got %d", cfg.Samples))
	}
	if cfg.Depth < 0 {
		problems = append(problems, fmt.Sprintf("depth must not be negative, got %d", cfg.Depth))
	}
	if cfg.Output != StdoutOutput {
		if _, err := output.FormatFromPath(cfg.Output); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// Usage writes the flag help to w
func Usage(w io.Writer) {
	fs := flagSet(&Config{Scene: DefaultScene, Output: DefaultOutput})
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// flagSet binds the CLI flags to cfg, using its current values as defaults
func flagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("sphere-tracer", flag.ContinueOnError)
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Built-in scene name or path to a .json scene file")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "Output file (.ppm, .ppm.zst, .ppm.sz, .png) or - for stdout")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels (0 keeps the scene's width)")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Samples per pixel (0 keeps the scene's value)")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Maximum bounce depth (0 keeps the scene's value)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 seeds from the clock)")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Suppress progress output")
	fs.BoolVar(&cfg.Pattern, "pattern", cfg.Pattern, "Write a gradient test pattern instead of rendering")
	return fs
}

// ApplyTo overrides the camera settings that were configured
func (c *Config) ApplyTo(camera renderer.CameraConfig) renderer.CameraConfig {
	if c.Width > 0 {
		camera.Width = c.Width
	}
	if c.Samples > 0 {
		camera.SamplesPerPixel = c.Samples
	}
	if c.Depth > 0 {
		camera.MaxDepth = c.Depth
	}
	return camera
}

// Random returns the random source for the configured seed
func (c *Config) Random() core.Random {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.NewSeededSampler(seed)
}

// ServerConfig captures the preview server settings
type ServerConfig struct {
	Address           string
	MaxPreviewWidth   int
	MaxPreviewSamples int
	PingInterval      time.Duration
}

// LoadServer reads the preview server configuration from TRACER_ADDR,
// TRACER_MAX_PREVIEW_WIDTH, TRACER_MAX_PREVIEW_SAMPLES and TRACER_PING_INTERVAL,
// then from args (-addr).
func LoadServer(args []string) (*ServerConfig, error) {
	cfg := &ServerConfig{
		Address:           getString("TRACER_ADDR", DefaultAddr),
		MaxPreviewWidth:   DefaultMaxPreviewWidth,
		MaxPreviewSamples: DefaultMaxPreviewSamples,
		PingInterval:      DefaultPingInterval,
	}

	var problems []string
	parseEnvInt("TRACER_MAX_PREVIEW_WIDTH", &cfg.MaxPreviewWidth, &problems)
	parseEnvInt("TRACER_MAX_PREVIEW_SAMPLES", &cfg.MaxPreviewSamples, &problems)

	if raw := strings.TrimSpace(os.Getenv("TRACER_PING_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("TRACER_PING_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.PingInterval = duration
		}
	}

	fs := flag.NewFlagSet("sphere-tracer-web", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Address, "addr", cfg.Address, "Address to listen on")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		problems = append(problems, err.Error())
	}

	if cfg.MaxPreviewWidth <= 0 {
		problems = append(problems, "max preview width must be positive")
	}
	if cfg.MaxPreviewSamples <= 0 {
		problems = append(problems, "max preview samples must be positive")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid server configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// parseEnvInt stores a non-negative integer from key in dst
func parseEnvInt(key string, dst *int, problems *[]string) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a non-negative integer, got %q", key, raw))
		return
	}
	*dst = value
}
