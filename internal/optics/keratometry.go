// Package optics holds the refraction and keratometry formulas used on the
// clinical forms. None of the functions fail: degenerate input yields zero
// or the unconverted value.
package optics

import "math"

// KeratometryIndex is the standard keratometric constant, (1.3375-1)*1000.
const KeratometryIndex = 337.5

// MMToDiopters converts a corneal radius in millimetres to diopters.
func MMToDiopters(radiusMM float64) float64 {
	if !(radiusMM > 0) || math.IsInf(radiusMM, 0) {
		return 0
	}
	return KeratometryIndex / radiusMM
}

// DioptersToMM converts corneal power in diopters to a radius in millimetres.
func DioptersToMM(diopters float64) float64 {
	if !(diopters > 0) || math.IsInf(diopters, 0) {
		return 0
	}
	return KeratometryIndex / diopters
}
