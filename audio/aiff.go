package audio

import (
	"bytes"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/ciphernest/stego/models"
)

// DecodeAIFF decodes an AIFF carrier, mirroring DecodeWAV but against
// the go-audio/aiff sibling package.
func DecodeAIFF(data []byte) (*Samples, error) {
	dec := aiff.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, models.NewErrorf(models.KindDataCorrupted, "audio: decode aiff: %v", err)
	}
	if buf == nil {
		return nil, models.NewError(models.KindDataCorrupted, "audio: aiff carrier has no PCM data")
	}
	return &Samples{
		Ints:          buf.Data,
		NumChannels:   buf.Format.NumChannels,
		SampleRate:    buf.Format.SampleRate,
		BitsPerSample: int(dec.BitDepth),
		Format:        FormatAIFF,
	}, nil
}

// EncodeAIFF re-serializes Samples into an AIFF container.
func EncodeAIFF(s *Samples) ([]byte, error) {
	ws := &writeSeeker{}
	enc := aiff.NewEncoder(ws, s.SampleRate, s.BitsPerSample, s.NumChannels)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: s.NumChannels, SampleRate: s.SampleRate},
		Data:           s.Ints,
		SourceBitDepth: s.BitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "audio: encode aiff: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "audio: encode aiff: %v", err)
	}
	return ws.Bytes(), nil
}
