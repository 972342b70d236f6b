package optics

import "math"

// DefaultVertexDistanceMM is the usual spectacle vertex distance.
const DefaultVertexDistanceMM = 12.0

// Rx is a sphero-cylindrical prescription. Axis is in TABO degrees.
type Rx struct {
	Sphere   float64 `json:"sphere"`
	Cylinder float64 `json:"cylinder"`
	Axis     int     `json:"axis"`
}

// EffectivePower moves power f across vertexMM millimetres:
// f / (1 - d*f) with d in metres. When the denominator is zero f is
// returned unchanged.
func EffectivePower(f, vertexMM float64) float64 {
	d := vertexMM / 1000
	denom := 1 - d*f
	if denom == 0 {
		return f
	}
	return f / denom
}

// QuarterDiopter rounds to the nearest 0.25 D step.
func QuarterDiopter(x float64) float64 {
	q := math.Round(x*4) / 4
	if q == 0 {
		return 0 // drop the sign of -0
	}
	return q
}

// SpectacleToContactLens converts a spectacle prescription to the
// equivalent contact lens power. Each principal meridian is converted
// separately and the result is quantised to quarter diopters. The axis is
// kept as is. A negative or NaN vertex distance uses the default.
func SpectacleToContactLens(rx Rx, vertexMM float64) Rx {
	if math.IsNaN(vertexMM) || vertexMM < 0 {
		vertexMM = DefaultVertexDistanceMM
	}
	f1 := rx.Sphere
	f2 := rx.Sphere + rx.Cylinder

	e1 := EffectivePower(f1, vertexMM)
	e2 := EffectivePower(f2, vertexMM)

	return Rx{
		Sphere:   QuarterDiopter(e1),
		Cylinder: QuarterDiopter(e2 - e1),
		Axis:     rx.Axis,
	}
}
