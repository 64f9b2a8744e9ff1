// Package engine implements the LSB steganography pipeline: capacity
// computation, the full embed pipeline, the full extract pipeline
// with depth auto-detection, and the embed/extract state machine. It
// orchestrates header, secretfile, cryptor, codec, and bitpack — the
// leaf components — the way a top-level steganography service
// orchestrates its own crypto/audio collaborators.
package engine

import (
	"log"

	"github.com/ciphernest/stego/bitpack"
	"github.com/ciphernest/stego/header"
	"github.com/ciphernest/stego/models"
	"github.com/ciphernest/stego/secretfile"
)

// State names the embed/extract state machine. Any error transitions
// to a terminal Failed state; there is no partial extraction on
// failure.
type State string

const (
	StateIdle          State = "Idle"
	StateHeaderParsed  State = "HeaderParsed"
	StateAuthenticated State = "Authenticated"
	StateExtracting    State = "Extracting"
	StateDone          State = "Done"
	StateFailed        State = "Failed"
)

// FreeSpace returns the number of bytes of remaining capacity after
// fitting files into samples at quality, with optional compression
// and passphrase. It may be negative; callers treat that as "will not
// fit".
func FreeSpace(samples []int, files []*secretfile.SecretFile, quality models.Quality, compressed bool, passphrase string, secretKey []byte) (int, error) {
	depth, ok := models.DepthOf(quality)
	if !ok {
		return 0, models.NewErrorf(models.KindInvalidArgument, "engine: unknown quality %q", quality)
	}

	hdr, err := header.Build(files, quality, compressed, passphrase, secretKey)
	if err != nil {
		return 0, err
	}

	total := len(samples)*depth/8 - len(hdr)
	for _, f := range files {
		sizeBytes, err := f.EstimatedEmbeddedSize(8, compressed, passphrase)
		if err != nil {
			return 0, err
		}
		total -= sizeBytes
	}
	return total, nil
}

// Embed mutates samples in place, writing the header followed by each
// file's on-wire bytes in FILENAMES order. It fails with
// RunOutOfFreeSpace before touching samples if there isn't room.
func Embed(samples []int, files []*secretfile.SecretFile, quality models.Quality, compressed bool, passphrase string, secretKey []byte) error {
	free, err := FreeSpace(samples, files, quality, compressed, passphrase, secretKey)
	if err != nil {
		return err
	}
	if free < 0 {
		return models.NewError(models.KindRunOutOfFreeSpace, "")
	}

	depth, _ := models.DepthOf(quality)
	hdr, err := header.Build(files, quality, compressed, passphrase, secretKey)
	if err != nil {
		return err
	}

	idx := bitpack.WriteBytes(samples, 0, hdr, depth)
	for _, f := range files {
		onWire, err := f.OnWireBytes(compressed, passphrase)
		if err != nil {
			return err
		}
		idx = bitpack.WriteBytes(samples, idx, onWire, depth)
	}
	log.Printf("[INFO] engine: embedded %d file(s) at depth %d, %d samples consumed", len(files), depth, idx)
	return nil
}

// GetHeaderBlocks is the non-raising pre-flight used by the inspection
// path: it probes depth without raising; absence of a payload returns
// (nil, nil) rather than an error.
func GetHeaderBlocks(samples []int, passphrase string, secretKey []byte) (*models.HeaderBlocks, error) {
	depth, found := header.ProbeQuality(samples)
	if !found {
		return nil, nil
	}

	blocks, _, err := header.ParseBlocks(samples, depth, header.MagicSamples(depth))
	if err != nil {
		return nil, err
	}

	if blocks.IsEncrypted() && passphrase == "" {
		return nil, models.NewError(models.KindRequirePassword, "")
	}

	key := secretKey
	if passphrase != "" {
		key = []byte(passphrase)
	}
	if !header.VerifyHMAC(key, blocks) {
		if blocks.IsEncrypted() {
			return nil, models.NewError(models.KindWrongPassword, "")
		}
		return nil, models.NewError(models.KindDataCorrupted, "")
	}
	return blocks, nil
}

// ExtractData runs the full extract pipeline: probe, parse,
// authenticate, then read every declared file in order. No partial
// result is ever returned on failure.
func ExtractData(samples []int, passphrase string, secretKey []byte) (*models.ExtractedPayload, error) {
	state := StateIdle

	depth, found := header.ProbeQuality(samples)
	if !found {
		return nil, models.NewError(models.KindNotEmbeddedBySystem, "")
	}

	blocks, idx, err := header.ParseBlocks(samples, depth, header.MagicSamples(depth))
	if err != nil {
		state = StateFailed
		log.Printf("[ERROR] engine: %s: header parse failed: %v", state, err)
		return nil, err
	}
	state = StateHeaderParsed

	ef := blocks.IsEncrypted()
	if ef && passphrase == "" {
		return nil, models.NewError(models.KindRequirePassword, "")
	}

	key := secretKey
	if passphrase != "" {
		key = []byte(passphrase)
	}
	if !header.VerifyHMAC(key, blocks) {
		state = StateFailed
		if ef {
			log.Printf("[WARN] engine: %s: HMAC mismatch, wrong passphrase", state)
			return nil, models.NewError(models.KindWrongPassword, "")
		}
		log.Printf("[WARN] engine: %s: HMAC mismatch, data corrupted", state)
		return nil, models.NewError(models.KindDataCorrupted, "")
	}
	state = StateAuthenticated

	sizes, err := secretfile.SplitSizes(blocks.Sizes, "/")
	if err != nil {
		return nil, err
	}
	filenames := secretfile.SplitFilenames(blocks.Filenames, "/")

	n := len(sizes)
	if len(filenames) < n {
		n = len(filenames)
	}

	state = StateExtracting
	files := make([]models.ExtractedFile, 0, n)
	for i := 0; i < n; i++ {
		nSampleCount := sizes[i]
		nBytes := nSampleCount * depth / 8
		if idx+bitpack.SamplesForBytes(nBytes, depth) > len(samples) {
			state = StateFailed
			log.Printf("[WARN] engine: %s: declared payload size exceeds carrier capacity", state)
			return nil, models.NewError(models.KindDataCorrupted, "")
		}
		payload, next := bitpack.ReadBytes(samples, idx, nBytes, depth)
		idx = next
		files = append(files, models.ExtractedFile{Name: filenames[i], Data: payload})
	}
	state = StateDone
	log.Printf("[INFO] engine: %s: extracted %d file(s) at depth %d", state, len(files), depth)

	return &models.ExtractedPayload{Metadata: blocks, ExtractedFiles: files}, nil
}
