package ember

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Canvas is the 2D drawing target a scene renders into. Coordinates are
// logical pixels; implementations apply the device scale factor themselves.
// The host supplies the canvas and may replace it after a surface loss.
type Canvas interface {
	// Size returns the logical width and height.
	Size() (w, h int)
	// Scale returns the device scale factor.
	Scale() float64
	// Resize discards the backing store and recreates it at the new logical
	// size. Contents are not preserved.
	Resize(w, h int)
	// FadeFill covers the whole surface with a partial-alpha color. Scenes
	// use it instead of a hard clear so prior frames decay into motion trails.
	FadeFill(c Color)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c Color)
	// FillCircle fills a circle centered on (x, y).
	FillCircle(x, y, r float64, c Color)
	// StrokeLine draws a line segment of the given width.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// FillText draws s with its top-left corner at (x, y) at the given
	// glyph size.
	FillText(s string, x, y, size float64, c Color)
}

// glyphFace is the shared fixed font for matrix glyphs and debug overlays.
// basicfont renders at 13px; FillText scales from there.
var glyphFace = text.NewGoXFace(basicfont.Face7x13)

const glyphFaceSize = 13.0

// ImageCanvas is the production Canvas backed by an *ebiten.Image. The
// backing image lives at physical resolution (logical size times scale);
// every draw call multiplies coordinates up.
type ImageCanvas struct {
	img   *ebiten.Image
	w, h  int
	scale float64
}

// NewImageCanvas creates a canvas with a fresh backing image.
func NewImageCanvas(w, h int, scale float64) *ImageCanvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if scale <= 0 {
		scale = 1
	}
	c := &ImageCanvas{w: w, h: h, scale: scale}
	c.img = ebiten.NewImage(int(float64(w)*scale), int(float64(h)*scale))
	return c
}

// Image returns the backing image for compositing onto the screen.
func (c *ImageCanvas) Image() *ebiten.Image { return c.img }

// Size returns the logical size.
func (c *ImageCanvas) Size() (int, int) { return c.w, c.h }

// Scale returns the device scale factor.
func (c *ImageCanvas) Scale() float64 { return c.scale }

// Resize recreates the backing image at the new logical size. The old image
// is disposed; ebiten images cannot grow in place.
func (c *ImageCanvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == c.w && h == c.h {
		return
	}
	c.img.Deallocate()
	c.w, c.h = w, h
	c.img = ebiten.NewImage(int(float64(w)*c.scale), int(float64(h)*c.scale))
}

// FadeFill overdraws the whole surface with a translucent rect.
func (c *ImageCanvas) FadeFill(col Color) {
	pw, ph := c.img.Bounds().Dx(), c.img.Bounds().Dy()
	vector.DrawFilledRect(c.img, 0, 0, float32(pw), float32(ph), col.toRGBA(), false)
}

// FillRect fills a rectangle in logical coordinates.
func (c *ImageCanvas) FillRect(x, y, w, h float64, col Color) {
	s := c.scale
	vector.DrawFilledRect(c.img, float32(x*s), float32(y*s), float32(w*s), float32(h*s), col.toRGBA(), false)
}

// FillCircle fills a circle in logical coordinates.
func (c *ImageCanvas) FillCircle(x, y, r float64, col Color) {
	s := c.scale
	vector.DrawFilledCircle(c.img, float32(x*s), float32(y*s), float32(r*s), col.toRGBA(), true)
}

// StrokeLine draws a line in logical coordinates.
func (c *ImageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	s := c.scale
	vector.StrokeLine(c.img, float32(x0*s), float32(y0*s), float32(x1*s), float32(y1*s), float32(width*s), col.toRGBA(), true)
}

// FillText draws s at (x, y) with the shared glyph face scaled to size.
func (c *ImageCanvas) FillText(str string, x, y, size float64, col Color) {
	op := &text.DrawOptions{}
	factor := size / glyphFaceSize * c.scale
	op.GeoM.Scale(factor, factor)
	op.GeoM.Translate(x*c.scale, y*c.scale)
	op.ColorScale.ScaleWithColor(col.toRGBA())
	text.Draw(c.img, str, glyphFace, op)
}

// nullCanvas is the degraded target used when no drawing surface can be
// acquired: it remembers a size and swallows every draw call.
type nullCanvas struct {
	w, h int
}

func (n *nullCanvas) Size() (int, int) { return n.w, n.h }
func (n *nullCanvas) Scale() float64   { return 1 }
func (n *nullCanvas) Resize(w, h int)  { n.w, n.h = w, h }

func (n *nullCanvas) FadeFill(Color)                                 {}
func (n *nullCanvas) FillRect(x, y, w, h float64, c Color)           {}
func (n *nullCanvas) FillCircle(x, y, r float64, c Color)            {}
func (n *nullCanvas) StrokeLine(x0, y0, x1, y1, w float64, c Color)  {}
func (n *nullCanvas) FillText(s string, x, y, size float64, c Color) {}
