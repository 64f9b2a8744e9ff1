// Package secretfile implements the SecretFile value: one secret's
// name, declared size, and raw bytes, with memoized compression and
// an estimated-embedded-size calculation used by the capacity planner
// before anything is actually embedded.
package secretfile

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ciphernest/stego/codec"
	"github.com/ciphernest/stego/cryptor"
	"github.com/ciphernest/stego/models"
)

// SecretFile holds one secret's name, declared raw size, and raw
// bytes, plus lazily-derived compressed bytes. It is immutable once
// constructed — compression happens once and is cached.
type SecretFile struct {
	name           string
	size           int
	rawData        []byte
	compressedData []byte
	compressedSet  bool
}

// FromPath reads path off disk and builds a SecretFile named after its
// base name.
func FromPath(path string) (*SecretFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewErrorf(models.KindInvalidArgument, "secretfile: read %q: %v", path, err)
	}
	return &SecretFile{
		name:    filepath.Base(path),
		size:    len(data),
		rawData: data,
	}, nil
}

// FromBytes builds a SecretFile directly from an in-memory blob, as
// used by the HTTP upload path.
func FromBytes(name string, data []byte) (*SecretFile, error) {
	if name == "" {
		return nil, models.NewError(models.KindInvalidArgument, "secretfile: name must not be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return nil, models.NewErrorf(models.KindInvalidArgument, "secretfile: name %q must not contain path separators", name)
	}
	return &SecretFile{
		name:    name,
		size:    len(data),
		rawData: data,
	}, nil
}

func (f *SecretFile) Name() string    { return f.name }
func (f *SecretFile) Size() int       { return f.size }
func (f *SecretFile) RawData() []byte { return f.rawData }

// CompressedData returns the deflate-compressed raw bytes, computing
// and caching them on first call.
func (f *SecretFile) CompressedData() ([]byte, error) {
	if f.compressedSet {
		return f.compressedData, nil
	}
	compressed, err := codec.Compress(f.rawData)
	if err != nil {
		return nil, err
	}
	f.compressedData = compressed
	f.compressedSet = true
	return compressed, nil
}

// CompressedSize returns len(CompressedData()).
func (f *SecretFile) CompressedSize() (int, error) {
	data, err := f.CompressedData()
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// EstimatedEmbeddedSize estimates the number of samples this file will
// occupy at bitsPerSample, given whether compression is on and
// whether a passphrase will be applied.
func (f *SecretFile) EstimatedEmbeddedSize(bitsPerSample int, compressed bool, passphrase string) (int, error) {
	l := f.size
	if compressed {
		cs, err := f.CompressedSize()
		if err != nil {
			return 0, err
		}
		l = cs
	}
	if passphrase != "" {
		l = cryptor.EstimateSize(l)
	}
	return l * 8 / bitsPerSample, nil
}

// OnWireBytes produces the actual bytes that will be bit-packed for
// this file under the given (compressed, passphrase) combination.
func (f *SecretFile) OnWireBytes(compressed bool, passphrase string) ([]byte, error) {
	data := f.rawData
	if compressed {
		cd, err := f.CompressedData()
		if err != nil {
			return nil, err
		}
		data = cd
	}
	if passphrase != "" {
		enc, err := cryptor.Encrypt(passphrase, data)
		if err != nil {
			return nil, err
		}
		return enc, nil
	}
	return data, nil
}

// JoinFilenames joins each file's name with delim, matching the
// FILENAMES header block.
func JoinFilenames(files []*SecretFile, delim string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return strings.Join(names, delim)
}

// JoinEmbeddedSizes joins each file's declared embedded sample count,
// matching the SIZES header block.
func JoinEmbeddedSizes(files []*SecretFile, bitsPerSample int, delim string, compressed bool, passphrase string) (string, error) {
	parts := make([]string, len(files))
	for i, f := range files {
		n, err := f.EstimatedEmbeddedSize(bitsPerSample, compressed, passphrase)
		if err != nil {
			return "", err
		}
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, delim), nil
}

// SplitFilenames and SplitSizes invert Join{Filenames,EmbeddedSizes}
// when parsing a header back out of a carrier.
func SplitFilenames(s string, delim string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, delim)
}

func SplitSizes(s string, delim string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, delim)
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, models.NewErrorf(models.KindDataCorrupted, "secretfile: invalid size %q", p)
		}
		sizes[i] = n
	}
	return sizes, nil
}
