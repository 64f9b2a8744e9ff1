package header

import (
	"github.com/ciphernest/stego/bitpack"
	"github.com/ciphernest/stego/models"
	"github.com/ciphernest/stego/secretfile"
	"testing"
)

func makeSamples(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = 1000
	}
	return s
}

func TestBuildParseRoundTrip(t *testing.T) {
	f, _ := secretfile.FromBytes("hello.txt", []byte("Hello, world!"))
	files := []*secretfile.SecretFile{f}

	hdr, err := Build(files, models.QualityMedium, false, "", []byte("systemkey"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	depth, _ := models.DepthOf(models.QualityMedium)
	samples := makeSamples(bitpack.SamplesForBytes(len(hdr), depth) + 100)
	bitpack.WriteBytes(samples, 0, hdr, depth)

	gotDepth, found := ProbeQuality(samples)
	if !found || gotDepth != depth {
		t.Fatalf("ProbeQuality: got (%d,%v) want (%d,true)", gotDepth, found, depth)
	}

	blocks, _, err := ParseBlocks(samples, depth, MagicSamples(depth))
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if blocks.CF != "0" || blocks.EF != "0" || blocks.Version != "1.0" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	if blocks.Filenames != "hello.txt" {
		t.Fatalf("unexpected filenames: %q", blocks.Filenames)
	}
	if !VerifyHMAC([]byte("systemkey"), blocks) {
		t.Fatal("expected HMAC to verify under the system key")
	}
}

func TestHMACSensitivity(t *testing.T) {
	f, _ := secretfile.FromBytes("a.txt", []byte("data"))
	files := []*secretfile.SecretFile{f}
	hdr, err := Build(files, models.QualityHigh, false, "pw", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	depth, _ := models.DepthOf(models.QualityHigh)
	samples := makeSamples(bitpack.SamplesForBytes(len(hdr), depth) + 10)
	bitpack.WriteBytes(samples, 0, hdr, depth)

	// Flip the low bit of the CF block's payload byte: the magic string
	// is followed by "1BLK", then the '0' payload, 8 samples per byte.
	samples[MagicSamples(depth)+4*8+7] ^= 1

	blocks, _, err := ParseBlocks(samples, depth, MagicSamples(depth))
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if VerifyHMAC([]byte("pw"), blocks) {
		t.Fatal("expected HMAC verification to fail after a bit flip")
	}
}

func TestProbeQualityNoMagic(t *testing.T) {
	samples := makeSamples(200)
	if _, found := ProbeQuality(samples); found {
		t.Fatal("expected no depth to match on a carrier with no embedded magic string")
	}
}
