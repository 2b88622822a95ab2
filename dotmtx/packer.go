package dotmtx

import (
	"petbots.fbbdev.it/dotmtxled/image1bit"
)

// Blocks slices the strip into 16-pixel-wide, 32-pixel-tall windows, left to
// right, and packs each window into 64 bytes: two bytes per row, top to
// bottom, least significant bit first within each byte. The rasterizer
// guarantees the strip width is a multiple of 16, so the slicing is exact.
func Blocks(strip *image1bit.Image) [][]byte {
	left := strip.Rect.Min.X
	top := strip.Rect.Min.Y
	count := strip.Rect.Dx() / BlockWidth

	blocks := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		block := make([]byte, 0, BlockBytes)
		for y := 0; y < BlockHeight; y++ {
			for c := 0; c < BlockWidth/8; c++ {
				var b byte
				for k := 0; k < 8; k++ {
					if strip.BitAt(left+i*BlockWidth+c*8+k, top+y) == image1bit.On {
						b |= 1 << uint(k)
					}
				}
				block = append(block, b)
			}
		}
		blocks = append(blocks, block)
	}

	return blocks
}

// BlockStream serializes blocks as separator + block, repeated in order.
func BlockStream(blocks [][]byte) []byte {
	stream := make([]byte, 0, len(blocks)*(len(Separator)+BlockBytes))
	for _, block := range blocks {
		stream = append(stream, Separator[:]...)
		stream = append(stream, block...)
	}
	return stream
}
