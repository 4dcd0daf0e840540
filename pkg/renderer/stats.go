package renderer

// RenderStats contains statistics about a rendered region
type RenderStats struct {
	TotalPixels int // Number of pixels traced
	HitPixels   int // Pixels whose ray had a visible hit
}

// Add accumulates the statistics of another region
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
}

// Coverage returns the fraction of traced pixels that hit
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
