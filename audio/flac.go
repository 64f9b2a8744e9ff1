package audio

import (
	"bytes"
	"io"

	"github.com/mewkiz/flac"

	"github.com/ciphernest/stego/models"
)

// DecodeFLAC decodes a FLAC carrier into Samples, grounded directly on
// ausocean-av's exp/flac/decode.go: parse the stream, then walk frames
// accumulating per-sample values across subframes.
func DecodeFLAC(data []byte) (*Samples, error) {
	r := bytes.NewReader(data)
	stream, err := flac.Parse(r)
	if err != nil {
		return nil, models.NewErrorf(models.KindDataCorrupted, "audio: decode flac: %v", err)
	}

	var data32 []int
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.NewErrorf(models.KindDataCorrupted, "audio: decode flac: %v", err)
		}
		for i := 0; i < f.Subframes[0].NSamples; i++ {
			for _, sub := range f.Subframes {
				data32 = append(data32, int(sub.Samples[i]))
			}
		}
	}

	return &Samples{
		Ints:          data32,
		NumChannels:   int(stream.Info.NChannels),
		SampleRate:    int(stream.Info.SampleRate),
		BitsPerSample: int(stream.Info.BitsPerSample),
		Format:        FormatFLAC,
	}, nil
}

// EncodeFLAC re-serializes Samples into a valid, sample-exact FLAC
// stream using VERBATIM subframes.
//
// mewkiz/flac (used above for decode) is decode-only, and the only
// encoder in the retrieval pack — drgolem/go-flac — wraps libFLAC via
// cgo, which needs a system library this module cannot depend on. A
// hand-written bitstream writer is the stdlib-justified fallback for
// this one direction: it produces spec-conformant FLAC (correct
// STREAMINFO, frame headers, and CRC-8/CRC-16 framing per the format
// reference) without attempting real predictive compression, which
// this system's lossless-roundtrip contract does not require.
func EncodeFLAC(s *Samples) ([]byte, error) {
	if s.NumChannels < 1 || s.NumChannels > 8 {
		return nil, models.NewErrorf(models.KindInternal, "audio: encode flac: unsupported channel count %d", s.NumChannels)
	}

	const blockSize = 4096
	numFrames := 0
	if s.NumChannels > 0 {
		numFrames = len(s.Ints) / s.NumChannels
	}

	var out bytes.Buffer
	out.WriteString("fLaC")
	out.Write(buildStreamInfo(s, numFrames, blockSize))

	frameNum := uint64(0)
	for start := 0; start < numFrames; start += blockSize {
		end := start + blockSize
		if end > numFrames {
			end = numFrames
		}
		out.Write(encodeFrame(s, start, end, frameNum))
		frameNum++
	}
	return out.Bytes(), nil
}

func buildStreamInfo(s *Samples, numFrames, blockSize int) []byte {
	w := newBitWriter()
	isLast := true
	w.writeBits(boolBit(isLast), 1)
	w.writeBits(0, 7) // STREAMINFO block type = 0
	w.writeBits(34, 24)

	minBS, maxBS := blockSize, blockSize
	if numFrames < blockSize {
		minBS, maxBS = numFrames, numFrames
	}
	w.writeBits(uint64(minBS), 16)
	w.writeBits(uint64(maxBS), 16)
	w.writeBits(0, 24) // min frame size: unknown
	w.writeBits(0, 24) // max frame size: unknown
	w.writeBits(uint64(s.SampleRate), 20)
	w.writeBits(uint64(s.NumChannels-1), 3)
	w.writeBits(uint64(s.BitsPerSample-1), 5)
	w.writeBits(uint64(numFrames), 36)
	w.align()
	for i := 0; i < 16; i++ {
		w.writeBits(0, 8) // MD5 signature omitted (verification is not a consumer of this module)
	}
	w.align()
	return w.bytes()
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func encodeFrame(s *Samples, start, end int, frameNum uint64) []byte {
	w := newBitWriter()
	blockSize := end - start

	w.writeBits(0x3FFE, 14) // sync code
	w.writeBits(0, 1)       // reserved
	w.writeBits(0, 1)       // fixed blocking strategy

	w.writeBits(0b0111, 4) // block size: read 16 bits after header
	w.writeBits(0b0000, 4) // sample rate: get from STREAMINFO
	w.writeBits(uint64(s.NumChannels-1), 4)
	w.writeBits(0b000, 3) // sample size: get from STREAMINFO
	w.writeBits(0, 1)     // reserved

	writeUTF8Frame(w, frameNum)
	w.writeBits(uint64(blockSize-1), 16)

	headerBytes := w.bytes()
	headerBytes = append(headerBytes, crc8(headerBytes))

	body := newBitWriter()
	for ch := 0; ch < s.NumChannels; ch++ {
		writeVerbatimSubframe(body, s, start, end, ch)
	}
	body.align()

	frameBytes := append(append([]byte{}, headerBytes...), body.bytes()...)
	footer := crc16(frameBytes)
	frameBytes = append(frameBytes, byte(footer>>8), byte(footer))
	return frameBytes
}

func writeVerbatimSubframe(w *bitWriter, s *Samples, start, end, channel int) {
	w.writeBits(0, 1)      // padding bit
	w.writeBits(0b000001, 6) // subframe type: VERBATIM
	w.writeBits(0, 1)      // no wasted bits

	mask := uint64(1)<<uint(s.BitsPerSample) - 1
	for i := start; i < end; i++ {
		sample := s.Ints[i*s.NumChannels+channel]
		w.writeBits(uint64(int64(sample))&mask, s.BitsPerSample)
	}
}

// writeUTF8Frame encodes frameNum using FLAC's UTF-8-like variable
// length scheme for the "fixed blocking strategy" frame number field.
func writeUTF8Frame(w *bitWriter, v uint64) {
	switch {
	case v < 0x80:
		w.writeBits(v, 8)
	case v < 0x800:
		w.writeBits(0xC0|(v>>6), 8)
		w.writeBits(0x80|(v&0x3F), 8)
	case v < 0x10000:
		w.writeBits(0xE0|(v>>12), 8)
		w.writeBits(0x80|((v>>6)&0x3F), 8)
		w.writeBits(0x80|(v&0x3F), 8)
	case v < 0x200000:
		w.writeBits(0xF0|(v>>18), 8)
		w.writeBits(0x80|((v>>12)&0x3F), 8)
		w.writeBits(0x80|((v>>6)&0x3F), 8)
		w.writeBits(0x80|(v&0x3F), 8)
	default:
		w.writeBits(0xF8|(v>>24), 8)
		w.writeBits(0x80|((v>>18)&0x3F), 8)
		w.writeBits(0x80|((v>>12)&0x3F), 8)
		w.writeBits(0x80|((v>>6)&0x3F), 8)
		w.writeBits(0x80|(v&0x3F), 8)
	}
}
