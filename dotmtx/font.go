package dotmtx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zachomedia/go-bdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// LoadFont loads a glyph source for the rasterizer. BDF bitmap fonts render
// at their native size and ignore the size argument; OpenType and TrueType
// fonts are scaled to size points at 72 DPI.
func LoadFont(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dotmtx: could not read font: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".bdf") {
		bdfFont, err := bdf.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("dotmtx: bdf: %w", err)
		}
		return bdfFont.NewFace(), nil
	}

	sfntFont, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dotmtx: opentype: %w", err)
	}

	face, err := opentype.NewFace(sfntFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("dotmtx: opentype: %w", err)
	}

	return face, nil
}
