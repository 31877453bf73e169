// Package whiteboard implements the brainstorming canvas: the pan/zoom
// coordinate transform, the note collection of a project and the pointer
// interaction model that turns input events into transform or note updates.
package whiteboard

// Point is a 2D coordinate, in either world or screen space depending on use.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// ScaleBounds is the closed interval the zoom scale is clamped to.
type ScaleBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScaleBounds allows zooming between 50% and 200%.
var DefaultScaleBounds = ScaleBounds{Min: 0.5, Max: 2.0}

// Clamp limits s to [Min, Max].
func (b ScaleBounds) Clamp(s float64) float64 {
	if s < b.Min {
		return b.Min
	}
	if s > b.Max {
		return b.Max
	}
	return s
}

// Transform maps world space to screen space: screen = world*Scale + Offset.
// The offset is unbounded (infinite canvas).
type Transform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// DefaultTransform is the identity transform a freshly mounted board starts with.
func DefaultTransform() Transform {
	return Transform{Scale: 1}
}

// Offset returns the pan translation as a point.
func (t Transform) Offset() Point {
	return Point{X: t.OffsetX, Y: t.OffsetY}
}

func (t Transform) withOffset(p Point) Transform {
	t.OffsetX, t.OffsetY = p.X, p.Y
	return t
}

// ToWorld converts a screen point to world space.
func ToWorld(screen Point, t Transform) Point {
	return screen.Sub(t.Offset()).Scale(1 / t.Scale)
}

// ToScreen converts a world point to screen space.
func ToScreen(world Point, t Transform) Point {
	return world.Scale(t.Scale).Add(t.Offset())
}

// Zoom adds delta to the scale and clamps it to b. The offset is left
// untouched, so zooming is anchored at the world origin rather than the pointer.
func Zoom(t Transform, delta float64, b ScaleBounds) Transform {
	t.Scale = b.Clamp(t.Scale + delta)
	return t
}

// Pan translates the offset by (dx, dy).
func Pan(t Transform, dx, dy float64) Transform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}
