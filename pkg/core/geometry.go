package core

import "math"

// Pos2 is a point on the board canvas. Notes are anchored by their top-left corner.
type Pos2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Vec2 is a 2D extent or displacement.
type Vec2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Add returns p displaced by v.
func (p Pos2) Add(v Vec2) Pos2 {
	return Pos2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Pos2 `json:"min" yaml:"min"`
	Max Pos2 `json:"max" yaml:"max"`
}

// RectFromMinSize builds a rectangle from its top-left corner and size.
func RectFromMinSize(min Pos2, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// RectFromCenterSize builds a rectangle of the given size centered on c.
func RectFromCenterSize(c Pos2, size Vec2) Rect {
	min := Pos2{X: c.X - size.X/2, Y: c.Y - size.Y/2}
	return RectFromMinSize(min, size)
}

// Size returns the width and height of r.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Max.X - r.Min.X, Y: r.Max.Y - r.Min.Y}
}

// Center returns the midpoint of r.
func (r Rect) Center() Pos2 {
	return Pos2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// DefaultGridSize is the snapping cell used when none is configured.
const DefaultGridSize float32 = 50

// ValidGridSize reports whether cell can be used for snapping.
func ValidGridSize(cell float32) bool {
	return cell > 0 && !math.IsInf(float64(cell), 0)
}

// SnapToGrid rounds each axis of pos to the nearest multiple of cell.
// Halves round away from zero. The caller must ensure cell > 0.
func SnapToGrid(pos Pos2, cell float32) Pos2 {
	return Pos2{X: snapAxis(pos.X, cell), Y: snapAxis(pos.Y, cell)}
}

// SnapToGridChecked is SnapToGrid with the cell size guard applied.
func SnapToGridChecked(pos Pos2, cell float32) (Pos2, error) {
	if !ValidGridSize(cell) {
		return pos, ErrInvalidGrid
	}
	return SnapToGrid(pos, cell), nil
}

func snapAxis(v, cell float32) float32 {
	return float32(math.Round(float64(v/cell))) * cell
}
