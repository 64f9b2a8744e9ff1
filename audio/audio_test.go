package audio

import "testing"

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"song.wav":  FormatWAV,
		"song.WAV":  FormatWAV,
		"song.flac": FormatFLAC,
		"song.aiff": FormatAIFF,
		"song.aif":  FormatAIFF,
	}
	for name, want := range cases {
		got, err := DetectFormat(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s: got %s want %s", name, got, want)
		}
	}
}

func TestDetectFormatRejectsMP3(t *testing.T) {
	if _, err := DetectFormat("song.mp3"); err == nil {
		t.Fatal("expected MP3 to be rejected as a carrier format")
	}
}

func TestBitWriterSixteenBitsAlignToTwoBytes(t *testing.T) {
	w := newBitWriter()
	w.writeBits(0x3FFE, 14)
	w.writeBits(0, 1)
	w.writeBits(1, 1)
	w.align()
	got := w.bytes()
	if len(got) != 2 {
		t.Fatalf("expected 2 bytes after align, got %d", len(got))
	}
}

func TestCRC8Deterministic(t *testing.T) {
	data := []byte{0xFF, 0xF8, 0x69, 0x18}
	if crc8(data) != crc8(data) {
		t.Fatal("crc8 must be deterministic")
	}
}
