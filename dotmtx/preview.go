package dotmtx

import (
	"image"
	"image/color"
	"image/gif"

	"petbots.fbbdev.it/dotmtxled/image1bit"
)

// Preview dot styling
const (
	dotInnerSize = 6
	dotPadding   = 1
	dotSize      = dotInnerSize + 2*dotPadding
)

var previewPalette = [...]color.Color{
	color.Black,
	color.Gray{50},
	color.RGBA{255, 170, 0, 255},
}

// Preview renders the strip as an enlarged dot-matrix GIF, one styled dot
// per LED, for inspecting a layout without a badge at hand. Unlit dots are
// drawn dark gray so the panel geometry stays visible.
func Preview(strip *image1bit.Image) *gif.GIF {
	w := strip.Rect.Dx()
	h := strip.Rect.Dy()

	img := image.NewPaletted(
		image.Rect(0, 0, w*dotSize+2*dotPadding, h*dotSize+2*dotPadding),
		previewPalette[:],
	)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dotState := uint8(1)
			if strip.BitAt(strip.Rect.Min.X+x, strip.Rect.Min.Y+y) == image1bit.On {
				dotState = 2
			}

			for dy := 0; dy < dotInnerSize; dy++ {
				for dx := 0; dx < dotInnerSize; dx++ {
					img.Pix[(2*dotPadding+y*dotSize+dy)*img.Stride+(2*dotPadding+x*dotSize+dx)] = dotState
				}
			}
		}
	}

	return &gif.GIF{
		Image:     []*image.Paletted{img},
		Delay:     []int{0},
		LoopCount: 0,
		Disposal:  []byte{0},
		Config: image.Config{
			ColorModel: color.Palette(previewPalette[:]),
			Width:      img.Rect.Dx(),
			Height:     img.Rect.Dy(),
		},
		BackgroundIndex: 0,
	}
}
