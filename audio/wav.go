package audio

import (
	"bytes"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ciphernest/stego/models"
)

// DecodeWAV decodes a WAV carrier into an integer sample buffer,
// grounded on ausocean-av's exp/flac/decode.go wiring of
// github.com/go-audio/wav + github.com/go-audio/audio.
func DecodeWAV(data []byte) (*Samples, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, models.NewErrorf(models.KindDataCorrupted, "audio: decode wav: %v", err)
	}
	if !dec.WasPCMAccessed() || buf == nil {
		return nil, models.NewError(models.KindDataCorrupted, "audio: wav carrier has no PCM data")
	}
	return &Samples{
		Ints:          buf.Data,
		NumChannels:   buf.Format.NumChannels,
		SampleRate:    buf.Format.SampleRate,
		BitsPerSample: int(dec.BitDepth),
		Format:        FormatWAV,
	}, nil
}

// EncodeWAV re-serializes Samples into a WAV container, writer-based
// the same way ausocean-av's writeSeeker/wav.Encoder pairing works.
func EncodeWAV(s *Samples) ([]byte, error) {
	ws := &writeSeeker{}
	enc := wav.NewEncoder(ws, s.SampleRate, s.BitsPerSample, s.NumChannels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: s.NumChannels, SampleRate: s.SampleRate},
		Data:           s.Ints,
		SourceBitDepth: s.BitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "audio: encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "audio: encode wav: %v", err)
	}
	return ws.Bytes(), nil
}
