// Package display presents rendered frames in a desktop window.
package display

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/hajimehoshi/ebiten/v2"
)

// Title is shown in the window's title bar
const Title = "Test - ESC to exit"

// TPS is the target frame rate
const TPS = 60

// statsInterval is how often render statistics are logged
const statsInterval = 5 * time.Second

// FrameRenderer renders a complete frame
type FrameRenderer interface {
	RenderFrame(ctx context.Context, frame *renderer.Frame) (renderer.RenderStats, error)
}

// Options configures the window
type Options struct {
	Width   int // Frame width in pixels
	Height  int // Frame height in pixels
	Upscale int // Window pixels per frame pixel
}

// RunWindow opens a window and re-renders the frame every tick until the window
// is closed or Escape is pressed. It blocks until then.
func RunWindow(r FrameRenderer, opts Options, logger core.Logger) error {
	g := newGame(r, opts, logger)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(windowSize(opts))
	ebiten.SetTPS(TPS)
	return ebiten.RunGame(g)
}

// windowSize returns the window's outer size; upscale factors below 1 count as 1
func windowSize(opts Options) (int, int) {
	upscale := max(opts.Upscale, 1)
	return opts.Width * upscale, opts.Height * upscale
}

type game struct {
	renderer FrameRenderer
	logger   core.Logger
	frame    *renderer.Frame
	img      *image.RGBA
	frameImg *ebiten.Image

	frames    int
	lastStats time.Time
}

func newGame(r FrameRenderer, opts Options, logger core.Logger) *game {
	return &game{
		renderer:  r,
		logger:    logger,
		frame:     renderer.NewFrame(opts.Width, opts.Height),
		img:       image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		lastStats: time.Now(),
	}
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return g.tick(time.Now())
}

// tick renders one frame into the upload buffer and logs throughput every statsInterval
func (g *game) tick(now time.Time) error {
	stats, err := g.renderer.RenderFrame(context.Background(), g.frame)
	if err != nil {
		return err
	}
	g.frame.CopyToRGBA(g.img)

	g.frames++
	if elapsed := now.Sub(g.lastStats); elapsed >= statsInterval {
		g.logger.Printf("%.1f frames/s, %d/%d pixels hit (%.1f%%)\n",
			float64(g.frames)/elapsed.Seconds(), stats.HitPixels, stats.TotalPixels, 100*stats.Coverage())
		g.frames = 0
		g.lastStats = now
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frameImg == nil {
		g.frameImg = ebiten.NewImage(g.frame.Width, g.frame.Height)
	}
	g.frameImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.frameImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.frame.Width, g.frame.Height
}
