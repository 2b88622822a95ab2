package image1bit

import (
	"image"
	"image/color"
	"testing"
)

func TestNewStride(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		wantStride int
	}{
		{"16 px", 16, 2},
		{"20 px", 20, 3},
		{"1 px", 1, 1},
		{"48 px", 48, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := New(image.Rect(0, 0, tt.width, 4))
			if img.Stride != tt.wantStride {
				t.Errorf("stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantStride*4 {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantStride*4)
			}
		})
	}
}

func TestBitLayoutLSBFirst(t *testing.T) {
	img := New(image.Rect(0, 0, 16, 2))

	img.SetBit(0, 0, On)
	if img.Pix[0] != 0x01 {
		t.Errorf("Pix[0] = %#02x, want 0x01 (pixel 0 in bit 0)", img.Pix[0])
	}

	img.SetBit(7, 0, On)
	if img.Pix[0] != 0x81 {
		t.Errorf("Pix[0] = %#02x, want 0x81 (pixel 7 in bit 7)", img.Pix[0])
	}

	img.SetBit(9, 1, On)
	if img.Pix[3] != 0x02 {
		t.Errorf("Pix[3] = %#02x, want 0x02 (pixel (9,1) in row 1, byte 1, bit 1)", img.Pix[3])
	}

	img.SetBit(0, 0, Off)
	if img.Pix[0] != 0x80 {
		t.Errorf("Pix[0] = %#02x, want 0x80 after clearing pixel 0", img.Pix[0])
	}
}

func TestSetAndAt(t *testing.T) {
	img := New(image.Rect(0, 0, 8, 8))

	img.Set(3, 4, color.White)
	if img.BitAt(3, 4) != On {
		t.Error("pixel set to white is not On")
	}

	img.Set(3, 4, color.Black)
	if img.BitAt(3, 4) != Off {
		t.Error("pixel set to black is not Off")
	}

	// out-of-bounds accesses are no-ops
	img.SetBit(100, 100, On)
	if img.BitAt(100, 100) != Off {
		t.Error("out-of-bounds BitAt should be Off")
	}
}

func TestBitModel(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want Bit
	}{
		{"white", color.White, On},
		{"black", color.Black, Off},
		{"light gray", color.Gray{200}, On},
		{"dark gray", color.Gray{50}, Off},
		{"bit passthrough", On, On},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitModel.Convert(tt.c).(Bit); got != tt.want {
				t.Errorf("BitModel.Convert(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestRGBA(t *testing.T) {
	if r, g, b, a := On.RGBA(); r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Error("On should be opaque white")
	}
	if r, g, b, a := Off.RGBA(); r != 0 || g != 0 || b != 0 || a != 0xFFFF {
		t.Error("Off should be opaque black")
	}
}
