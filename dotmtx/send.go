package dotmtx

import (
	"context"
	"fmt"

	"golang.org/x/image/font"

	"petbots.fbbdev.it/dotmtxled/log"
)

// Transport delivers encoded packets to the badge. Connect must be
// idempotent; Send delivers one chunk and blocks until the transfer
// completes or fails.
type Transport interface {
	Connect(ctx context.Context) error
	Send(ctx context.Context, chunk []byte) error
}

// Encode runs the full pipeline from text to device payload: rasterize,
// pack, frame.
func Encode(face font.Face, text string, opts Options) ([]byte, error) {
	strip, err := DrawStrip(face, text)
	if err != nil {
		return nil, err
	}
	return BuildPacket(Blocks(strip), opts), nil
}

// Show encodes text and streams the payload to the badge. Chunks are sent
// strictly in order and each transfer is awaited before the next starts: the
// firmware reassembles the packet from raw arrival order. A failed or
// cancelled send leaves the device with a truncated packet and there is no
// mid-stream resume, so a retry must restart from the first chunk.
func Show(ctx context.Context, t Transport, face font.Face, text string, opts Options) error {
	packet, err := Encode(face, text, opts)
	if err != nil {
		return err
	}

	if err := t.Connect(ctx); err != nil {
		return fmt.Errorf("dotmtx: connect: %w", err)
	}

	chunks := SplitChunks(packet, MaxChunkSize)
	log.DebugLogger.Printf("packet: %d bytes, %d chunks", len(packet), len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Send(ctx, chunk); err != nil {
			return fmt.Errorf("dotmtx: chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	return nil
}
