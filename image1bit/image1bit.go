// Package image1bit provides a 1-bit monochrome image format matching the bit
// layout streamed to iDotMatrix-class LED badge panels.
//
// Pixels are stored row-major, 8 pixels per byte, least significant bit first:
// bit k of a byte holds the pixel at column byteIndex*8+k of its row.
package image1bit

import (
	"image"
	"image/color"
)

// Bit is a 1-bit color: a pixel is either On or Off.
type Bit bool

const (
	Off Bit = false
	On  Bit = true
)

// RGBA converts the Bit to standard RGBA: On is white, Off is black.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// toBit converts any color.Color to a Bit by luminance threshold.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Image is a 1-bit image with LSB-first horizontal bit packing.
type Image struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// New creates a new 1-bit image with the specified bounds. Row storage is
// padded to whole bytes; padding bits stay Off unless set explicitly.
func New(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}

	stride := (w + 7) / 8
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit at (x, y). Pixels outside the bounds are Off.
func (p *Image) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
// It implements the draw.Image interface.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// The leftmost pixel of each byte lives in the least significant bit.
func (p *Image) pixOffset(x, y int) (offset int, mask byte) {
	offset = (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
	mask = 1 << uint((x-p.Rect.Min.X)%8)
	return
}
