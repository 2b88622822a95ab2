// Package dotmtx encodes text into the binary text program consumed by
// iDotMatrix-class 16x32 LED badge displays and streams it to a transport.
package dotmtx

// Panel wire geometry: bitmap data is streamed as 16x32 column slices
// regardless of the panel's physical width.
const (
	BlockWidth  = 16
	BlockHeight = 32
	BlockBytes  = BlockWidth * BlockHeight / 8
)

// ReferenceGlyph fixes the cell width for every character. The device
// expects uniform columns, so all cells share the reference glyph's
// bounding-box width instead of per-glyph advances.
const ReferenceGlyph = '6'

// MaxChunkSize is the largest write the badge accepts per transfer.
const MaxChunkSize = 512

// Resource limits
const MaxChars = 100

// Separator precedes every bitmap block on the wire. The firmware relies on
// it for block boundary detection even though the metadata carries a count.
var Separator = [4]byte{0x05, 0xFF, 0xFF, 0xFF}
