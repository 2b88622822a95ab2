package dotmtx

import (
	"encoding/binary"
	"hash/crc32"
	"image/color"
)

// DisplayMode selects how the badge animates the text.
type DisplayMode byte

const (
	ModeReplace DisplayMode = iota
	ModeMarquee
	ModeReverseMarquee
	ModeRise
	ModeFall
	ModeBlink
	ModeFade
	ModeTetris
	ModeFill
)

// ColorMode selects how the badge colors the text pixels.
type ColorMode byte

const (
	ColorWhite ColorMode = iota
	ColorFixed
	ColorRainbow1
	ColorRainbow2
	ColorRainbow3
	ColorRainbow4
)

// BackgroundMode selects how the badge fills the background pixels.
type BackgroundMode byte

const (
	BackgroundBlack BackgroundMode = iota
	BackgroundFixed
)

// Options configures the text program written to the badge. Color is only
// consulted when ColorMode is ColorFixed, BGColor when Background is
// BackgroundFixed; the firmware ignores them otherwise, but they are always
// present on the wire.
type Options struct {
	Mode       DisplayMode
	Speed      byte
	ColorMode  ColorMode
	Color      color.RGBA
	Background BackgroundMode
	BGColor    color.RGBA
}

const (
	headerLen   = 16
	metadataLen = 14
)

// Metadata builds the fixed 14-byte text metadata block announcing count
// bitmap blocks and the display configuration.
func Metadata(count int, opts Options) []byte {
	meta := make([]byte, metadataLen)
	binary.LittleEndian.PutUint16(meta[0:2], uint16(count))
	meta[2] = 0x00
	meta[3] = 0x01
	meta[4] = byte(opts.Mode)
	meta[5] = opts.Speed
	meta[6] = byte(opts.ColorMode)
	meta[7] = opts.Color.R
	meta[8] = opts.Color.G
	meta[9] = opts.Color.B
	meta[10] = byte(opts.Background)
	meta[11] = opts.BGColor.R
	meta[12] = opts.BGColor.G
	meta[13] = opts.BGColor.B
	return meta
}

// BuildPacket frames the bitmap blocks into the final device payload: a
// 16-byte header carrying the length fields and a CRC-32 of the body,
// followed by the metadata block and the separator-delimited bitmaps. The
// glyph count in the metadata always equals the number of separators in the
// stream; the firmware reads both.
func BuildPacket(blocks [][]byte, opts Options) []byte {
	body := append(Metadata(len(blocks), opts), BlockStream(blocks)...)

	header := make([]byte, headerLen)
	binary.LittleEndian.PutUint16(header[0:2], uint16(headerLen+len(body)))
	header[2] = 0x03
	binary.LittleEndian.PutUint32(header[5:9], uint32(len(body)))
	binary.LittleEndian.PutUint32(header[9:13], crc32.ChecksumIEEE(body))
	header[15] = 0x0C

	return append(header, body...)
}
