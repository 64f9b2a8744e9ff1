// Package audio is the audio-codec collaborator: it turns an uploaded
// carrier blob into the mutable integer sample buffer the engine
// operates on, and turns a mutated sample buffer back into bytes in
// the original container. It is deliberately dumb about
// steganography — engine never imports it, service wires the two
// together.
package audio

import (
	"path/filepath"
	"strings"

	"github.com/ciphernest/stego/models"
)

// Format names a supported lossless carrier container.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
	FormatAIFF Format = "aiff"
)

// Samples is the caller-owned, in-place-mutable integer sample buffer
// the engine reads and writes. Ints holds interleaved multi-channel
// samples.
type Samples struct {
	Ints          []int
	NumChannels   int
	SampleRate    int
	BitsPerSample int
	Format        Format
}

// DetectFormat maps a filename extension to a supported carrier
// format. MP3 is explicitly rejected: it cannot round-trip
// sample-exact and is not a supported carrier.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".wav":
		return FormatWAV, nil
	case ".flac":
		return FormatFLAC, nil
	case ".aif", ".aiff":
		return FormatAIFF, nil
	case ".mp3":
		return "", models.NewError(models.KindInvalidArgument, "audio: MP3 cannot round-trip sample-exact and is not a supported carrier")
	default:
		return "", models.NewErrorf(models.KindInvalidArgument, "audio: unsupported carrier extension %q", ext)
	}
}

// Decode dispatches to the format-specific decoder.
func Decode(format Format, data []byte) (*Samples, error) {
	switch format {
	case FormatWAV:
		return DecodeWAV(data)
	case FormatFLAC:
		return DecodeFLAC(data)
	case FormatAIFF:
		return DecodeAIFF(data)
	default:
		return nil, models.NewErrorf(models.KindInvalidArgument, "audio: unsupported format %q", format)
	}
}

// Encode dispatches to the format-specific encoder, re-serializing
// Samples into the same container it was decoded from.
func Encode(s *Samples) ([]byte, error) {
	switch s.Format {
	case FormatWAV:
		return EncodeWAV(s)
	case FormatFLAC:
		return EncodeFLAC(s)
	case FormatAIFF:
		return EncodeAIFF(s)
	default:
		return nil, models.NewErrorf(models.KindInvalidArgument, "audio: unsupported format %q", s.Format)
	}
}
