package service

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/ciphernest/stego/audio"
	"github.com/ciphernest/stego/models"
)

var testSecretKey = []byte("service-test-secret")

func silentWAV(t *testing.T, numSamples int) []byte {
	t.Helper()
	ints := make([]int, numSamples)
	data, err := audio.EncodeWAV(&audio.Samples{
		Ints:          ints,
		NumChannels:   1,
		SampleRate:    44100,
		BitsPerSample: 16,
		Format:        audio.FormatWAV,
	})
	if err != nil {
		t.Fatalf("EncodeWAV fixture: %v", err)
	}
	return data
}

func TestInspectReportsFreeSpaceOnFreshCarrier(t *testing.T) {
	svc := New(testSecretKey)
	cover := silentWAV(t, 4000)

	result, err := svc.Inspect(&InspectRequest{
		CoverAudio:    cover,
		CoverFilename: "cover.wav",
		Quality:       models.QualityMedium,
		SecretFiles: []UploadedSecretFile{
			{Name: "a.txt", Data: []byte("hello")},
		},
	})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.AlreadyEmbedded {
		t.Fatal("expected a fresh carrier to report no existing payload")
	}
	if result.FreeSpaceBytes <= 0 {
		t.Fatalf("expected positive free space, got %d", result.FreeSpaceBytes)
	}
}

func TestEmbedThenInspectReportsAlreadyEmbedded(t *testing.T) {
	svc := New(testSecretKey)
	cover := silentWAV(t, 4000)

	embedded, err := svc.Embed(&EmbedRequest{
		CoverAudio:    cover,
		CoverFilename: "cover.wav",
		Quality:       models.QualityMedium,
		SecretFiles: []UploadedSecretFile{
			{Name: "a.txt", Data: []byte("hello")},
		},
	})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	result, err := svc.Inspect(&InspectRequest{CoverAudio: embedded, CoverFilename: "cover.wav"})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !result.AlreadyEmbedded {
		t.Fatal("expected the embedded carrier to report an existing payload")
	}
	if len(result.Filenames) != 1 || result.Filenames[0] != "a.txt" {
		t.Fatalf("unexpected filenames: %v", result.Filenames)
	}
}

func TestEmbedThenExtractRoundTrip(t *testing.T) {
	svc := New(testSecretKey)
	cover := silentWAV(t, 4000)

	embedded, err := svc.Embed(&EmbedRequest{
		CoverAudio:    cover,
		CoverFilename: "cover.wav",
		Quality:       models.QualityMedium,
		SecretFiles: []UploadedSecretFile{
			{Name: "a.txt", Data: []byte("hello world")},
		},
	})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	result, err := svc.Extract(&ExtractRequest{CoverAudio: embedded, CoverFilename: "cover.wav"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(result.Archive), int64(len(result.Archive)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(r.File) != 1 || r.File[0].Name != "a.txt" {
		t.Fatalf("unexpected archive contents: %+v", r.File)
	}
	rc, err := r.File[0].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	var got bytes.Buffer
	got.ReadFrom(rc)
	if got.String() != "hello world" {
		t.Fatalf("got %q want %q", got.String(), "hello world")
	}
}

func TestEmbedRejectsMP3Cover(t *testing.T) {
	svc := New(testSecretKey)
	_, err := svc.Embed(&EmbedRequest{
		CoverAudio:    []byte{0, 1, 2},
		CoverFilename: "cover.mp3",
		Quality:       models.QualityMedium,
		SecretFiles:   []UploadedSecretFile{{Name: "a.txt", Data: []byte("x")}},
	})
	if err == nil {
		t.Fatal("expected MP3 cover to be rejected")
	}
}
