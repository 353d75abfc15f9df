// Package paint rasterizes evaluated node snapshots onto an owned pixel
// buffer and transmits finished frames to a remote display.
package paint

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// A Surface is an accumulating RGBA buffer that frames are painted onto.
type Surface struct {
	img    *image.RGBA
	width  int
	height int
}

// NewSurface creates a Surface of the given pixel dimensions.
func NewSurface(width, height int) *Surface {
	s := new(Surface)
	s.width = width
	s.height = height
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Image exposes the underlying buffer.
func (s *Surface) Image() *image.RGBA { return s.img }

// At returns the pixel at x, y.
func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Clear fills the surface with a background color. An empty or invalid
// color clears to transparent.
func (s *Surface) Clear(background string) {
	var fill color.Color = color.RGBA{}
	if background != "" {
		if c, err := colorful.Hex(background); err == nil {
			r, g, b := c.Clamped().RGB255()
			fill = color.RGBA{r, g, b, 0xff}
		}
	}
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
}

// MarshalBinary converts the surface into wire data: little-endian
// width and height followed by raw RGBA bytes.
func (s *Surface) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4, 4+len(s.img.Pix))
	binary.LittleEndian.PutUint16(data, uint16(s.width))
	binary.LittleEndian.PutUint16(data[2:], uint16(s.height))
	data = append(data, s.img.Pix...)
	return data, nil
}
