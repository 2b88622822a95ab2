package dotmtx

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"petbots.fbbdev.it/dotmtxled/image1bit"
)

var ErrEmptyText = errors.New("dotmtx: empty text")
var ErrNoGlyph = errors.New("dotmtx: no glyph for character")

// cellWidth returns the fixed cell width shared by every character, taken
// from the reference glyph's bounding box at the face's size.
func cellWidth(face font.Face) (int, error) {
	bounds, _, ok := face.GlyphBounds(ReferenceGlyph)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoGlyph, ReferenceGlyph)
	}
	return (bounds.Max.X - bounds.Min.X).Ceil(), nil
}

// DrawStrip renders text into a monochrome strip of height 32. Each
// character is rasterized into its own cell of the fixed width, the cells
// are laid out left to right, vertically centered via the face's ascent and
// descent, and the strip is padded on the right with off-pixels up to the
// next multiple of 16.
//
// Rendering fails rather than substituting a placeholder when a character
// has no glyph in the face; a dropped or swapped glyph would silently shift
// every column after it.
func DrawStrip(face font.Face, text string) (*image1bit.Image, error) {
	if face == nil {
		return nil, errors.New("dotmtx: nil font face")
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, ErrEmptyText
	}

	w, err := cellWidth(face)
	if err != nil {
		return nil, err
	}

	metrics := face.Metrics()
	cellHeight := (metrics.Ascent + metrics.Descent).Ceil()
	y0 := BlockHeight/2 - cellHeight/2

	totalWidth := len(runes) * w
	pad := (BlockWidth - totalWidth%BlockWidth) % BlockWidth
	strip := image1bit.New(image.Rect(0, 0, totalWidth+pad, BlockHeight))

	drawer := font.Drawer{
		Src:  image.White,
		Face: face,
	}

	for i, r := range runes {
		if _, ok := face.GlyphAdvance(r); !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoGlyph, r)
		}

		// Own cell per character so overlong glyphs clip at the cell
		// boundary instead of bleeding into the neighbor cell.
		cell := image1bit.New(image.Rect(0, 0, w, BlockHeight))
		drawer.Dst = cell
		drawer.Dot = fixed.Point26_6{X: 0, Y: metrics.Ascent}
		drawer.DrawString(string(r))

		draw.Draw(strip, image.Rect(i*w, y0, (i+1)*w, y0+BlockHeight), cell, image.Point{}, draw.Src)
	}

	return strip, nil
}
