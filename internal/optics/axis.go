package optics

import (
	"fmt"
	"math"
)

const (
	MinAxis = 0.0
	MaxAxis = 180.0
)

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) add(v Vector, length float64) Point {
	return Point{X: p.X + v.X*length, Y: p.Y + v.Y*length}
}

// ArrowStyle selects how the two barbs of an axis arrow are laid out. The
// styles differ only in barb angle.
type ArrowStyle string

const (
	// ArrowStyleBack20 draws barbs at ±20° from the reversed shaft.
	ArrowStyleBack20 ArrowStyle = "back20"
	// ArrowStyleOpen155 draws barbs at ±155° from the shaft.
	ArrowStyleOpen155 ArrowStyle = "open155"
)

func ParseArrowStyle(s string) (ArrowStyle, error) {
	switch ArrowStyle(s) {
	case "", ArrowStyleBack20:
		return ArrowStyleBack20, nil
	case ArrowStyleOpen155:
		return ArrowStyleOpen155, nil
	}
	return "", fmt.Errorf("unknown arrow style %q", s)
}

// ClampAxis limits a TABO axis to [0, 180]. NaN maps to 0.
func ClampAxis(axis float64) float64 {
	switch {
	case math.IsNaN(axis), axis < MinAxis:
		return MinAxis
	case axis > MaxAxis:
		return MaxAxis
	}
	return axis
}

func direction(radians float64) Vector {
	return Vector{X: math.Cos(radians), Y: math.Sin(radians)}
}

// AxisDirection returns the unit vector of a TABO axis: 0° points right,
// 90° up and 180° left, with y growing upwards.
func AxisDirection(axis float64) Vector {
	return direction(ClampAxis(axis) * math.Pi / 180)
}

// ArrowGeometry is the tip of an axis arrow and the end points of its barbs.
type ArrowGeometry struct {
	Axis      float64 `json:"axis"`
	Direction Vector  `json:"direction"`
	Tip       Point   `json:"tip"`
	LeftBarb  Point   `json:"left_barb"`
	RightBarb Point   `json:"right_barb"`
}

// Arrow places an arrowhead radius units from center along axis, with barbs
// barb units long.
func Arrow(center Point, radius, axis float64, style ArrowStyle, barb float64) ArrowGeometry {
	axis = ClampAxis(axis)
	theta := axis * math.Pi / 180
	dir := direction(theta)
	tip := center.add(dir, radius)

	var left, right Vector
	switch style {
	case ArrowStyleOpen155:
		offset := 155 * math.Pi / 180
		left = direction(theta + offset)
		right = direction(theta - offset)
	default:
		back := theta + math.Pi
		offset := 20 * math.Pi / 180
		left = direction(back - offset)
		right = direction(back + offset)
	}

	return ArrowGeometry{
		Axis:      axis,
		Direction: dir,
		Tip:       tip,
		LeftBarb:  tip.add(left, barb),
		RightBarb: tip.add(right, barb),
	}
}
