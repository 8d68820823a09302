package ember

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to the canvas.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is pure opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns the color with its alpha replaced by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp(a, 0, 1)
	return c
}

// toRGBA converts to a premultiplied 8-bit color for submission to ebiten.
func (c Color) toRGBA() color.RGBA {
	a := clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1) * a * 255),
		G: uint8(clamp(c.G, 0, 1) * a * 255),
		B: uint8(clamp(c.B, 0, 1) * a * 255),
		A: uint8(a * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets, and velocities.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range used for randomized parameters
// (column speeds, glyph delays, particle depth).
type Range struct {
	Min, Max float64
}

// Sample returns a uniformly random value in [Min, Max).
func (r Range) Sample() float64 {
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// DeviceClass selects the tuning profile for the host device.
type DeviceClass uint8

const (
	DeviceMobile  DeviceClass = iota // phones: no trails, no pointer force, low counts
	DeviceTablet                     // mid counts, pointer force enabled
	DeviceDesktop                    // full counts, trails, pointer force
)

// String returns the lower-case device class name.
func (d DeviceClass) String() string {
	switch d {
	case DeviceMobile:
		return "mobile"
	case DeviceTablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
