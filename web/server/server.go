package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// Server serves sphere renders and per-pixel intersection queries over HTTP
type Server struct {
	port   int
	logger core.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}

	s := &Server{port: port, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// SceneRequest holds the frame and sphere placement shared by every endpoint
type SceneRequest struct {
	Wall      renderer.WallConfig
	Transform mgl64.Mat4
}

// parseSceneRequest parses frame size and sphere placement from the query string
func parseSceneRequest(values url.Values) (*SceneRequest, error) {
	wall := renderer.DefaultWallConfig()

	var err error
	if wall.Width, err = parseIntParam(values, "width", wall.Width, 16, 2000); err != nil {
		return nil, err
	}
	if wall.Height, err = parseIntParam(values, "height", wall.Height, 16, 2000); err != nil {
		return nil, err
	}

	var translate, scale mgl64.Vec3
	for i, axis := range []string{"x", "y", "z"} {
		if translate[i], err = parseFloatParam(values, "t"+axis, 0, -1000, 1000); err != nil {
			return nil, err
		}
		if scale[i], err = parseFloatParam(values, "s"+axis, 1, -1000, 1000); err != nil {
			return nil, err
		}
		if scale[i] == 0 {
			return nil, fmt.Errorf("s%s must be non-zero", axis)
		}
	}

	rotateZ, err := parseFloatParam(values, "rz", 0, -360, 360)
	if err != nil {
		return nil, err
	}

	return &SceneRequest{
		Wall:      wall,
		Transform: config.SphereTransform(translate, scale, rotateZ),
	}, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
