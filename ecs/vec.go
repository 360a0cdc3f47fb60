package ecs

import "math"

// Vec2 is a 2D vector in map or screen space.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Manhattan returns |X| + |Y|.
func (v Vec2) Manhattan() float64 {
	return math.Abs(v.X) + math.Abs(v.Y)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Pos  Vec2 `yaml:"pos"`
	Size Vec2 `yaml:"size"`
}

// Contains reports whether other lies fully inside r.
func (r Rect) Contains(other Rect) bool {
	return other.Pos.X >= r.Pos.X && other.Pos.Y >= r.Pos.Y &&
		other.Pos.X+other.Size.X <= r.Pos.X+r.Size.X &&
		other.Pos.Y+other.Size.Y <= r.Pos.Y+r.Size.Y
}

// Overlaps reports whether r and other share any area.
func (r Rect) Overlaps(other Rect) bool {
	return other.Pos.X < r.Pos.X+r.Size.X && r.Pos.X < other.Pos.X+other.Size.X &&
		other.Pos.Y < r.Pos.Y+r.Size.Y && r.Pos.Y < other.Pos.Y+other.Size.Y
}
