package hocr

import "math"

// InchDPI is the resolution used to map inch-based coordinates to pixels
const InchDPI = 300

// Box is an axis-aligned rectangle in image coordinates
type Box struct {
	X0, Y0, X1, Y1 int
}

// BoxFromPolygon returns the bounding rectangle of a flat
// [x1, y1, x2, y2, ...] polygon. Rotated text yields the enclosing box.
func BoxFromPolygon(polygon []float64) (Box, bool) {
	if len(polygon) < 2 || len(polygon)%2 != 0 {
		return Box{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for i := 0; i < len(polygon); i += 2 {
		x, y := polygon[i], polygon[i+1]
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	return Box{
		X0: int(math.Floor(minX)),
		Y0: int(math.Floor(minY)),
		X1: int(math.Ceil(maxX)),
		Y1: int(math.Ceil(maxY)),
	}, true
}

func scalePolygon(polygon []float64, scale float64) []float64 {
	if scale == 1 {
		return polygon
	}

	scaled := make([]float64, len(polygon))
	for i, v := range polygon {
		scaled[i] = scaleValue(v, scale)
	}
	return scaled
}

// scaleValue rounds away float noise such as 2.1*300 = 630.0000000000001,
// which would otherwise push a ceiling up by one pixel
func scaleValue(v, scale float64) float64 {
	return math.Round(v*scale*1e6) / 1e6
}
