package service

import (
	"log"

	"github.com/ciphernest/stego/archivebuilder"
	"github.com/ciphernest/stego/audio"
	"github.com/ciphernest/stego/engine"
	"github.com/ciphernest/stego/models"
	"github.com/ciphernest/stego/secretfile"
)

// stegoService implements Steganography against the core engine and
// its audio/archive collaborators.
type stegoService struct {
	secretKey []byte
}

// New builds a Steganography backed by the real engine, audio codecs,
// and archive builder, keyed by the process-wide secret passed in
// explicitly rather than read ambiently.
func New(secretKey []byte) Steganography {
	return &stegoService{secretKey: secretKey}
}

func (s *stegoService) decodeCover(filename string, data []byte) (*audio.Samples, error) {
	format, err := audio.DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	return audio.Decode(format, data)
}

func normalize(files []UploadedSecretFile) ([]*secretfile.SecretFile, error) {
	out := make([]*secretfile.SecretFile, 0, len(files))
	for _, f := range files {
		sf, err := secretfile.FromBytes(f.Name, f.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, sf)
	}
	return out, nil
}

func (s *stegoService) Inspect(req *InspectRequest) (*InspectResult, error) {
	samples, err := s.decodeCover(req.CoverFilename, req.CoverAudio)
	if err != nil {
		return nil, err
	}

	blocks, err := engine.GetHeaderBlocks(samples.Ints, req.Passphrase, s.secretKey)
	if err != nil {
		return nil, err
	}
	if blocks != nil {
		filenames := secretfile.SplitFilenames(blocks.Filenames, "/")
		sizes, err := secretfile.SplitSizes(blocks.Sizes, "/")
		if err != nil {
			return nil, err
		}
		sizes64 := make([]int64, len(sizes))
		for i, n := range sizes {
			sizes64[i] = int64(n)
		}
		log.Printf("[INFO] service: Inspect: carrier already has an embedded payload (version %s)", blocks.Version)
		return &InspectResult{
			AlreadyEmbedded: true,
			Filenames:       filenames,
			Sizes:           sizes64,
			Version:         blocks.Version,
		}, nil
	}

	files, err := normalize(req.SecretFiles)
	if err != nil {
		return nil, err
	}
	free, err := engine.FreeSpace(samples.Ints, files, req.Quality, req.Compressed, req.Passphrase, s.secretKey)
	if err != nil {
		return nil, err
	}
	return &InspectResult{FreeSpaceBytes: int64(free)}, nil
}

func (s *stegoService) Embed(req *EmbedRequest) ([]byte, error) {
	samples, err := s.decodeCover(req.CoverFilename, req.CoverAudio)
	if err != nil {
		return nil, err
	}
	files, err := normalize(req.SecretFiles)
	if err != nil {
		return nil, err
	}
	if err := engine.Embed(samples.Ints, files, req.Quality, req.Compressed, req.Passphrase, s.secretKey); err != nil {
		return nil, err
	}
	out, err := audio.Encode(samples)
	if err != nil {
		return nil, models.AsStegoError(err)
	}
	return out, nil
}

func (s *stegoService) Extract(req *ExtractRequest) (*ExtractResult, error) {
	samples, err := s.decodeCover(req.CoverFilename, req.CoverAudio)
	if err != nil {
		return nil, err
	}
	payload, err := engine.ExtractData(samples.Ints, req.Passphrase, s.secretKey)
	if err != nil {
		return nil, err
	}
	archive, err := archivebuilder.Build(payload, req.Passphrase)
	if err != nil {
		return nil, err
	}
	return &ExtractResult{Payload: payload, Archive: archive}, nil
}
