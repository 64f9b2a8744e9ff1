package bitpack

import (
	"bytes"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	for _, depth := range []int{1, 2, 4, 8} {
		data := []byte("CipherNest")
		samples := make([]int, SamplesForBytes(len(data), depth))
		for i := range samples {
			samples[i] = 0x7FFF // high bits set, should be preserved below mask
		}
		WriteBytes(samples, 0, data, depth)
		got, _ := ReadBytes(samples, 0, len(data), depth)
		if !bytes.Equal(got, data) {
			t.Fatalf("depth %d: got %v want %v", depth, got, data)
		}
	}
}

func TestHighBitsPreserved(t *testing.T) {
	depth := 2
	samples := []int{0x7FFF, 0x7FFF, 0x7FFF, 0x7FFF}
	original := append([]int{}, samples...)
	WriteBytes(samples, 0, []byte{0xAB}, depth)
	mask := Mask(depth)
	for i := range samples {
		if samples[i]>>depth != original[i]>>depth {
			t.Fatalf("sample %d: high bits changed", i)
		}
		_ = mask
	}
}
