package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/snapshot"
)

// handleRender renders one frame of the configured sphere and returns it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	upscale, err := parseIntParam(r.URL.Query(), "upscale", 1, 1, 8)
	if err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	frame := renderer.NewFrame(req.Wall.Width, req.Wall.Height)
	stats := renderer.NewRaytracer(geometry.NewTransformedSphere(req.Transform), req.Wall).RenderFrame(frame)

	data, err := snapshot.PNGBytes(frame.RGBA(), upscale)
	if err != nil {
		s.logger.Printf("Render encode failed: %v\n", err)
		http.Error(w, "Render failed", http.StatusInternalServerError)
		return
	}

	s.logger.Printf("Rendered %dx%d in %v (%d hits)\n", frame.Width, frame.Height, time.Since(start), stats.HitPixels)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
