package ir

import (
	"testing"

	"github.com/evanacox/dawn/internal/types"
)

func TestAPIntMasksToWidth(t *testing.T) {
	tests := []struct {
		value uint64
		width types.Width
		want  uint64
	}{
		{0, types.Width8, 0},
		{255, types.Width8, 255},
		{256, types.Width8, 0},
		{0x1FF, types.Width8, 0xFF},
		{^uint64(0), types.Width16, 0xFFFF},
		{^uint64(0), types.Width32, 0xFFFFFFFF},
		{^uint64(0), types.Width64, ^uint64(0)},
		{^uint64(0), types.Width8, 0xFF},
	}
	for _, tt := range tests {
		got := NewAPInt(tt.value, tt.width)
		if got.Value() != tt.want {
			t.Fatalf("NewAPInt(%#x, %d).Value() = %#x, want %#x",
				tt.value, tt.width, got.Value(), tt.want)
		}
		if got.Width() != tt.width {
			t.Fatalf("width %d not preserved", tt.width)
		}
	}
}

func TestAPIntEqualityDependsOnWidth(t *testing.T) {
	a := NewAPInt(1, types.Width8)
	b := NewAPInt(1, types.Width16)
	if a == b {
		t.Fatalf("same value at different widths must not be equal")
	}
	if a != NewAPInt(1, types.Width8) {
		t.Fatalf("same value and width must be equal")
	}
	if NewAPInt(256, types.Width8) != NewAPInt(0, types.Width8) {
		t.Fatalf("masking should happen before equality")
	}
}

func TestAPIntInvalidWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("width 13 should panic")
		}
	}()
	NewAPInt(1, types.Width(13))
}
