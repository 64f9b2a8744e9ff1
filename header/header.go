// Package header implements the framed header format: construction,
// HMAC-authenticated block parsing, and the concurrent magic-string
// depth probe.
//
// The probe is a pure scatter-gather over the four candidate depths
// with no shared mutable state, built on golang.org/x/sync/errgroup.
package header

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ciphernest/stego/bitpack"
	"github.com/ciphernest/stego/models"
	"github.com/ciphernest/stego/secretfile"
)

// MagicString is the literal 10-byte tag that opens every header,
// emitted without a length prefix.
const MagicString = "CipherNest"

// Delimiter separates a block's ASCII-decimal length prefix from its
// payload.
const Delimiter = "BLK"

var magicBytes = []byte(MagicString)

// Build constructs the full header byte string for secretFiles at the
// given quality, compression flag, and optional passphrase. When
// passphrase is empty, secretKey is used as the HMAC key instead.
func Build(files []*secretfile.SecretFile, quality models.Quality, compressed bool, passphrase string, secretKey []byte) ([]byte, error) {
	depth, ok := models.DepthOf(quality)
	if !ok {
		return nil, models.NewErrorf(models.KindInvalidArgument, "header: unknown quality %q", quality)
	}

	cf := "0"
	if compressed {
		cf = "1"
	}
	ef := "0"
	if passphrase != "" {
		ef = "1"
	}
	version := "1.0"
	filenames := secretfile.JoinFilenames(files, "/")
	sizes, err := secretfile.JoinEmbeddedSizes(files, depth, "/", compressed, passphrase)
	if err != nil {
		return nil, err
	}

	key := secretKey
	if passphrase != "" {
		key = []byte(passphrase)
	}
	mac := computeHMAC(key, cf, ef, version, filenames, sizes)

	out := make([]byte, 0, 256)
	out = append(out, magicBytes...)
	out = append(out, block(cf)...)
	out = append(out, block(ef)...)
	out = append(out, block(version)...)
	out = append(out, block(filenames)...)
	out = append(out, block(sizes)...)
	out = append(out, block(string(mac))...)
	return out, nil
}

func block(payload string) []byte {
	out := make([]byte, 0, len(payload)+16)
	out = append(out, []byte(strconv.Itoa(len(payload)))...)
	out = append(out, []byte(Delimiter)...)
	out = append(out, []byte(payload)...)
	return out
}

func computeHMAC(key []byte, cf, ef, version, filenames, sizes string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(cf))
	mac.Write([]byte(ef))
	mac.Write([]byte(version))
	mac.Write([]byte(filenames))
	mac.Write([]byte(sizes))
	return mac.Sum(nil)
}

// VerifyHMAC recomputes the HMAC over blocks' raw payload bytes under
// key and compares it in constant time against the stored tag, to
// avoid timing side channels during passphrase verification.
func VerifyHMAC(key []byte, blocks *models.HeaderBlocks) bool {
	want := computeHMAC(key, blocks.CF, blocks.EF, blocks.Version, blocks.Filenames, blocks.Sizes)
	return hmac.Equal(want, blocks.HMAC)
}

// ProbeQuality tries all four candidate depths concurrently, each a
// pure read-only function over a prefix of samples starting at index
// 0 (the prefixes overlap), and
// returns the first depth — in Quality-map iteration order, not
// completion order — whose magic-string comparison succeeds.
func ProbeQuality(samples []int) (int, bool) {
	results := make([]bool, len(models.QualityOrder))

	var g errgroup.Group
	for i, q := range models.QualityOrder {
		i, q := i, q
		g.Go(func() error {
			results[i] = probeDepth(samples, mustDepth(q))
			return nil
		})
	}
	_ = g.Wait()

	for i := range models.QualityOrder {
		if results[i] {
			return mustDepth(models.QualityOrder[i]), true
		}
	}
	return 0, false
}

func mustDepth(q models.Quality) int {
	d, _ := models.DepthOf(q)
	return d
}

// probeDepth is the pure, side-effect-free task run per candidate
// depth: read the low `depth` bits of the first n samples and compare
// byte-for-byte to the magic string.
func probeDepth(samples []int, depth int) bool {
	n := bitpack.SamplesForBytes(len(magicBytes), depth)
	if n > len(samples) {
		return false
	}
	got, _ := bitpack.ReadBytes(samples, 0, len(magicBytes), depth)
	for i, b := range magicBytes {
		if got[i] != b {
			return false
		}
	}
	return true
}

// MagicSamples returns how many samples the magic string occupies at
// depth bits per sample — the starting point for ParseBlocks.
func MagicSamples(depth int) int {
	return bitpack.SamplesForBytes(len(magicBytes), depth)
}

// ParseBlocks parses the six header blocks (CF, EF, VERSION, FILENAMES,
// EMBEDDED_SIZES, HMAC) starting at sample index startIdx (immediately
// after the magic string), in that fixed order. It returns the parsed
// blocks and the next free sample index (where payload data begins).
func ParseBlocks(samples []int, depth int, startIdx int) (*models.HeaderBlocks, int, error) {
	idx := startIdx

	cf, idx, err := readBlock(samples, idx, depth)
	if err != nil {
		return nil, 0, err
	}
	ef, idx, err := readBlock(samples, idx, depth)
	if err != nil {
		return nil, 0, err
	}
	version, idx, err := readBlock(samples, idx, depth)
	if err != nil {
		return nil, 0, err
	}
	filenames, idx, err := readBlock(samples, idx, depth)
	if err != nil {
		return nil, 0, err
	}
	sizes, idx, err := readBlock(samples, idx, depth)
	if err != nil {
		return nil, 0, err
	}
	tag, idx, err := readBlock(samples, idx, depth)
	if err != nil {
		return nil, 0, err
	}

	return &models.HeaderBlocks{
		Depth:     depth,
		CF:        string(cf),
		EF:        string(ef),
		Version:   string(version),
		Filenames: string(filenames),
		Sizes:     string(sizes),
		HMAC:      tag,
	}, idx, nil
}

// readBlock scans sample-by-sample until the literal delimiter
// appears, parses the preceding ASCII-decimal length, then consumes
// exactly that many further bytes' worth of samples as the payload.
func readBlock(samples []int, start int, depth int) ([]byte, int, error) {
	chunksPerByte := 8 / depth
	idx := start
	var prefix []byte

	for {
		if idx+chunksPerByte > len(samples) {
			return nil, 0, models.NewError(models.KindDataCorrupted, "header: truncated block")
		}
		var b byte
		b, idx = bitpack.ReadByte(samples, idx, depth)
		prefix = append(prefix, b)
		if len(prefix) >= len(Delimiter) && string(prefix[len(prefix)-len(Delimiter):]) == Delimiter {
			break
		}
		if len(prefix) > 32 {
			return nil, 0, models.NewError(models.KindDataCorrupted, "header: block delimiter not found")
		}
	}

	lengthStr := string(prefix[:len(prefix)-len(Delimiter)])
	length, err := strconv.Atoi(lengthStr)
	if err != nil || length < 0 {
		return nil, 0, models.NewErrorf(models.KindDataCorrupted, "header: invalid block length %q", lengthStr)
	}

	nSamples := bitpack.SamplesForBytes(length, depth)
	if idx+nSamples > len(samples) {
		return nil, 0, models.NewError(models.KindDataCorrupted, "header: truncated block payload")
	}
	payload, idx := bitpack.ReadBytes(samples, idx, length, depth)
	return payload, idx, nil
}
