package server

import (
	"encoding/json"
	"net/http"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// InspectResponse represents the JSON response for a pixel inspection
type InspectResponse struct {
	Hit           bool       `json:"hit"`
	T             float64    `json:"t,omitempty"`
	Point         [3]float64 `json:"point"`
	Origin        [3]float64 `json:"origin"`
	Direction     [3]float64 `json:"direction"`
	Intersections []float64  `json:"intersections"`
}

// inspectPixel traces the ray through pixel (x, y) and reports every crossing
func inspectPixel(req *SceneRequest, x, y int) InspectResponse {
	sphere := geometry.NewTransformedSphere(req.Transform)
	ray := core.NewRay(req.Wall.Eye, req.Wall.Direction(x, y))
	xs := sphere.Intersect(ray)

	resp := InspectResponse{
		Origin:        ray.Origin,
		Direction:     ray.Direction,
		Intersections: make([]float64, 0, len(xs)),
	}
	for _, isect := range xs {
		resp.Intersections = append(resp.Intersections, isect.T)
	}

	if hit, ok := core.Hit(xs); ok {
		resp.Hit = true
		resp.T = hit.T
		resp.Point = ray.At(hit.T)
	}
	return resp
}

// handleInspect reports the intersections of the ray through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	x, err := parseIntParam(r.URL.Query(), "x", req.Wall.Width/2, 0, req.Wall.Width-1)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", req.Wall.Height/2, 0, req.Wall.Height-1)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	data, err := json.Marshal(inspectPixel(req, x, y))
	if err != nil {
		s.logger.Printf("Inspect (%d, %d) failed: %v\n", x, y, err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "intersection is not representable: " + err.Error()})
		return
	}
	w.Write(data)
}
