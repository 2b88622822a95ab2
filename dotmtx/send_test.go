package dotmtx

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"
)

type fakeTransport struct {
	connects int
	sends    int
	failAt   int // fail on this send (1-based), 0 = never
	chunks   [][]byte
}

func (f *fakeTransport) Connect(ctx context.Context) error {
	f.connects++
	return nil
}

func (f *fakeTransport) Send(ctx context.Context, chunk []byte) error {
	f.sends++
	if f.failAt != 0 && f.sends >= f.failAt {
		return errors.New("link reset")
	}
	f.chunks = append(f.chunks, append([]byte(nil), chunk...))
	return nil
}

func TestShowDeliversWholePacketInOrder(t *testing.T) {
	face := loadTestFace(t)
	opts := Options{
		Mode:      ModeMarquee,
		Speed:     95,
		ColorMode: ColorFixed,
		Color:     color.RGBA{R: 255, A: 255},
	}

	// long enough to need more than one chunk
	text := strings.Repeat("HI", 11)

	packet, err := Encode(face, text, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(packet) <= MaxChunkSize {
		t.Fatalf("test text encodes to %d bytes, want > %d", len(packet), MaxChunkSize)
	}

	ft := &fakeTransport{}
	if err := Show(context.Background(), ft, face, text, opts); err != nil {
		t.Fatal(err)
	}

	if ft.connects != 1 {
		t.Errorf("Connect called %d times, want 1", ft.connects)
	}
	if len(ft.chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(ft.chunks))
	}
	for i, chunk := range ft.chunks[:len(ft.chunks)-1] {
		if len(chunk) != MaxChunkSize {
			t.Errorf("chunk %d is %d bytes, want %d", i, len(chunk), MaxChunkSize)
		}
	}

	var got []byte
	for _, chunk := range ft.chunks {
		got = append(got, chunk...)
	}
	if !bytes.Equal(got, packet) {
		t.Error("delivered chunks do not reassemble into the packet")
	}
}

func TestShowFailedChunkAbortsSend(t *testing.T) {
	face := loadTestFace(t)

	ft := &fakeTransport{failAt: 1}
	err := Show(context.Background(), ft, face, "HI", Options{})
	if err == nil {
		t.Fatal("Show should fail when a chunk delivery fails")
	}
	if len(ft.chunks) != 0 {
		t.Errorf("%d chunks delivered after the failure, want 0", len(ft.chunks))
	}
}

func TestShowCancelledContext(t *testing.T) {
	face := loadTestFace(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ft := &fakeTransport{}
	if err := Show(ctx, ft, face, "HI", Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Show error = %v, want context.Canceled", err)
	}
	if len(ft.chunks) != 0 {
		t.Errorf("%d chunks delivered after cancellation, want 0", len(ft.chunks))
	}
}

func TestShowEmptyTextNeverTouchesTransport(t *testing.T) {
	face := loadTestFace(t)

	ft := &fakeTransport{}
	if err := Show(context.Background(), ft, face, "", Options{}); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Show error = %v, want ErrEmptyText", err)
	}
	if ft.connects != 0 || ft.sends != 0 {
		t.Error("transport was used for an empty text")
	}
}

func TestEncodeGlyphCountMatchesStripWidth(t *testing.T) {
	face := loadTestFace(t)

	strip, err := DrawStrip(face, "HI HI")
	if err != nil {
		t.Fatal(err)
	}

	packet, err := Encode(face, "HI HI", Options{})
	if err != nil {
		t.Fatal(err)
	}

	wantBlocks := strip.Bounds().Dx() / BlockWidth
	if got := int(packet[headerLen]) | int(packet[headerLen+1])<<8; got != wantBlocks {
		t.Errorf("glyph count = %d, want %d", got, wantBlocks)
	}
}
