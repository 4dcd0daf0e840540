// Package config loads tracer settings from the environment, an optional .env
// file and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/joho/godotenv"
)

// S3Config holds the snapshot upload target. Uploads are disabled when Bucket is empty.
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
}

// Config contains every tunable of the tracer
type Config struct {
	Width    int
	Height   int
	WallZ    float64
	WallSize float64
	Eye      mgl64.Vec3

	// Sphere placement, applied as translate * rotateZ * scale
	Translate mgl64.Vec3
	Scale     mgl64.Vec3
	RotateZ   float64 // Degrees

	Workers   int
	TileSize  int
	OutputDir string
	Upscale   int
	Port      int // Web server only

	S3 S3Config
}

// Default returns the configuration matching renderer.DefaultWallConfig
func Default() *Config {
	wall := renderer.DefaultWallConfig()
	return &Config{
		Width:     wall.Width,
		Height:    wall.Height,
		WallZ:     wall.WallZ,
		WallSize:  wall.WallSize,
		Eye:       wall.Eye,
		Translate: mgl64.Vec3{0, 0, 0},
		Scale:     mgl64.Vec3{1, 1, 1},
		TileSize:  renderer.DefaultParallelConfig().TileSize,
		OutputDir: "output",
		Upscale:   1,
		Port:      8080,
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "renders",
		},
	}
}

// Load reads envFile if it exists and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	env := envReader{}

	env.intVar(&cfg.Width, "TRACER_WIDTH")
	env.intVar(&cfg.Height, "TRACER_HEIGHT")
	env.floatVar(&cfg.WallZ, "TRACER_WALL_Z")
	env.floatVar(&cfg.WallSize, "TRACER_WALL_SIZE")
	env.vecVar(&cfg.Eye, "TRACER_EYE")
	env.vecVar(&cfg.Translate, "TRACER_TRANSLATE")
	env.vecVar(&cfg.Scale, "TRACER_SCALE")
	env.floatVar(&cfg.RotateZ, "TRACER_ROTATE_Z")
	env.intVar(&cfg.Workers, "TRACER_WORKERS")
	env.intVar(&cfg.TileSize, "TRACER_TILE_SIZE")
	env.intVar(&cfg.Upscale, "TRACER_UPSCALE")
	env.intVar(&cfg.Port, "TRACER_PORT")
	cfg.OutputDir = getEnv("TRACER_OUTPUT_DIR", cfg.OutputDir)

	cfg.S3.AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3.SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3.Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3.Region = getEnv("S3_REGION", cfg.S3.Region)
	cfg.S3.Bucket = os.Getenv("S3_BUCKET")
	cfg.S3.Prefix = getEnv("S3_PREFIX", cfg.S3.Prefix)

	if env.err != nil {
		return nil, env.err
	}
	return cfg, nil
}

// RegisterFlags binds command-line flags to cfg, using its current values as defaults
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Width, "width", c.Width, "Frame width in pixels")
	flags.IntVar(&c.Height, "height", c.Height, "Frame height in pixels")
	flags.Float64Var(&c.WallZ, "wall-z", c.WallZ, "Distance of the projection wall")
	flags.Float64Var(&c.WallSize, "wall-size", c.WallSize, "Edge length of the projection wall")
	flags.Var((*Vec3Value)(&c.Eye), "eye", "Ray origin as x,y,z")
	flags.Var((*Vec3Value)(&c.Translate), "translate", "Sphere translation as x,y,z")
	flags.Var((*Vec3Value)(&c.Scale), "scale", "Sphere scale as x,y,z")
	flags.Float64Var(&c.RotateZ, "rotate-z", c.RotateZ, "Sphere rotation about z in degrees")
	flags.IntVar(&c.Workers, "workers", c.Workers, "Render workers (0 = one per CPU)")
	flags.IntVar(&c.TileSize, "tile-size", c.TileSize, "Tile edge length in pixels")
	flags.StringVar(&c.OutputDir, "out", c.OutputDir, "Directory for PNG snapshots")
	flags.IntVar(&c.Upscale, "upscale", c.Upscale, "Integer upscale factor for the window and snapshots")
}

// Validate rejects settings the renderer cannot work with
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"wall z", c.WallZ},
		{"wall size", c.WallSize},
		{"rotate z", c.RotateZ},
	} {
		if !isFinite(f.value) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.value)
		}
	}
	for _, v := range []struct {
		name  string
		value mgl64.Vec3
	}{
		{"eye", c.Eye},
		{"translate", c.Translate},
		{"scale", c.Scale},
	} {
		if !isFinite(v.value.X()) || !isFinite(v.value.Y()) || !isFinite(v.value.Z()) {
			return fmt.Errorf("%s must be finite, got %v", v.name, v.value)
		}
	}
	if err := c.Wall().Validate(); err != nil {
		return err
	}
	if c.Upscale < 1 {
		return fmt.Errorf("upscale must be at least 1, got %d", c.Upscale)
	}
	if c.TileSize < 1 {
		return fmt.Errorf("tile size must be at least 1, got %d", c.TileSize)
	}
	if c.Scale.X() == 0 || c.Scale.Y() == 0 || c.Scale.Z() == 0 {
		return fmt.Errorf("scale components must be non-zero, got %v", c.Scale)
	}
	return nil
}

// Wall returns the projection described by the configuration
func (c *Config) Wall() renderer.WallConfig {
	return renderer.WallConfig{
		Width:    c.Width,
		Height:   c.Height,
		WallZ:    c.WallZ,
		WallSize: c.WallSize,
		Eye:      c.Eye,
	}
}

// Parallel returns the tiling configuration
func (c *Config) Parallel() renderer.ParallelConfig {
	return renderer.ParallelConfig{
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
	}
}

// SphereTransform composes the object to world matrix: scale first, then rotate, then translate
func (c *Config) SphereTransform() mgl64.Mat4 {
	return SphereTransform(c.Translate, c.Scale, c.RotateZ)
}

// SphereTransform builds translate * rotateZ * scale
func SphereTransform(translate, scale mgl64.Vec3, rotateZDegrees float64) mgl64.Mat4 {
	t := mgl64.Translate3D(translate.X(), translate.Y(), translate.Z())
	r := mgl64.HomogRotate3DZ(mgl64.DegToRad(rotateZDegrees))
	s := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}

// ParseVec3 parses "x,y,z"
func ParseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var v mgl64.Vec3
	for i, part := range parts {
		f, err := parseFinite(strings.TrimSpace(part))
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("invalid component %q in %q: %w", part, s, err)
		}
		v[i] = f
	}
	return v, nil
}

// parseFinite parses a float and rejects NaN and infinities
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(f) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FormatVec3 is the inverse of ParseVec3
func FormatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("%g,%g,%g", v.X(), v.Y(), v.Z())
}

// Vec3Value adapts mgl64.Vec3 to flag.Value
type Vec3Value mgl64.Vec3

func (v *Vec3Value) String() string {
	if v == nil {
		return ""
	}
	return FormatVec3(mgl64.Vec3(*v))
}

func (v *Vec3Value) Set(s string) error {
	parsed, err := ParseVec3(s)
	if err != nil {
		return err
	}
	*v = Vec3Value(parsed)
	return nil
}

// getEnv returns the value of key or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envReader parses typed environment variables, keeping the first error
type envReader struct {
	err error
}

func (r *envReader) intVar(dst *int, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || r.err != nil {
		return
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = parsed
}

func (r *envReader) floatVar(dst *float64, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || r.err != nil {
		return
	}
	parsed, err := parseFinite(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = parsed
}

func (r *envReader) vecVar(dst *mgl64.Vec3, key string) {
	value, ok := os.LookupEnv(key)
	if !ok || r.err != nil {
		return
	}
	parsed, err := ParseVec3(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = parsed
}
