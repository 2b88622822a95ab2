package dotmtx

import (
	"bytes"
	"image"
	"math/bits"
	"testing"

	"petbots.fbbdev.it/dotmtxled/image1bit"
)

func TestBlocksCountAndSize(t *testing.T) {
	for _, blocksWide := range []int{1, 2, 5} {
		strip := image1bit.New(image.Rect(0, 0, blocksWide*BlockWidth, BlockHeight))

		blocks := Blocks(strip)
		if len(blocks) != blocksWide {
			t.Errorf("Blocks() on %d-px strip = %d blocks, want %d", blocksWide*BlockWidth, len(blocks), blocksWide)
		}
		for i, block := range blocks {
			if len(block) != BlockBytes {
				t.Errorf("block %d is %d bytes, want %d", i, len(block), BlockBytes)
			}
		}
	}
}

func TestBlocksBitOrder(t *testing.T) {
	strip := image1bit.New(image.Rect(0, 0, 2*BlockWidth, BlockHeight))

	strip.SetBit(0, 0, image1bit.On)  // block 0, row 0, byte 0, bit 0
	strip.SetBit(10, 0, image1bit.On) // block 0, row 0, byte 1, bit 2
	strip.SetBit(7, 31, image1bit.On) // block 0, row 31, byte 0, bit 7
	strip.SetBit(16, 5, image1bit.On) // block 1, row 5, byte 0, bit 0

	blocks := Blocks(strip)

	if blocks[0][0] != 0x01 {
		t.Errorf("blocks[0][0] = %#02x, want 0x01", blocks[0][0])
	}
	if blocks[0][1] != 0x04 {
		t.Errorf("blocks[0][1] = %#02x, want 0x04", blocks[0][1])
	}
	if blocks[0][62] != 0x80 {
		t.Errorf("blocks[0][62] = %#02x, want 0x80", blocks[0][62])
	}
	if blocks[1][10] != 0x01 {
		t.Errorf("blocks[1][10] = %#02x, want 0x01", blocks[1][10])
	}

	lit := 0
	for _, block := range blocks {
		for _, b := range block {
			lit += bits.OnesCount8(b)
		}
	}
	if lit != 4 {
		t.Errorf("%d bits set across all blocks, want 4", lit)
	}
}

func TestBlockStream(t *testing.T) {
	blocks := [][]byte{
		bytes.Repeat([]byte{0xAA}, BlockBytes),
		bytes.Repeat([]byte{0x55}, BlockBytes),
	}

	stream := BlockStream(blocks)

	if want := 2 * (len(Separator) + BlockBytes); len(stream) != want {
		t.Fatalf("stream length = %d, want %d", len(stream), want)
	}
	if !bytes.Equal(stream[0:4], Separator[:]) {
		t.Error("first block is not preceded by the separator")
	}
	if !bytes.Equal(stream[68:72], Separator[:]) {
		t.Error("second block is not preceded by the separator")
	}
	if !bytes.Equal(stream[4:68], blocks[0]) {
		t.Error("first block payload does not match")
	}
	if !bytes.Equal(stream[72:136], blocks[1]) {
		t.Error("second block payload does not match")
	}
}
