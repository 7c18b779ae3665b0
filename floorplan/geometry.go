package floorplan

import "math"

// Rect is an axis-aligned box in layout units.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Overlaps reports strict interior overlap. Boxes that only share an edge
// do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right <= o.Left ||
		r.Left >= o.Right ||
		r.Bottom <= o.Top ||
		r.Top >= o.Bottom)
}

// Box is the rubber-band rectangle of a box-select session. It is kept in
// pointer precision, not snapped.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func boxBetween(a, b Point) Box {
	return Box{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Intersects reports strict overlap between the box and r.
func (b Box) Intersects(r Rect) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return float64(r.Left) < b.X+b.Width &&
		float64(r.Right) > b.X &&
		float64(r.Top) < b.Y+b.Height &&
		float64(r.Bottom) > b.Y
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snap rounds v to the nearest grid line, halves rounding up.
func Snap(v float64) int {
	return int(math.Floor(v/GridSize+0.5)) * GridSize
}

// snapDown rounds v down to a grid line. Used for upper bounds so that a
// clamped value stays on the grid.
func snapDown(v int) int {
	return int(math.Floor(float64(v)/GridSize)) * GridSize
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
