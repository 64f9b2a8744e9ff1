package archivebuilder

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/ciphernest/stego/codec"
	"github.com/ciphernest/stego/cryptor"
	"github.com/ciphernest/stego/models"
)

func TestBuildPlain(t *testing.T) {
	payload := &models.ExtractedPayload{
		Metadata: &models.HeaderBlocks{CF: "0", EF: "0"},
		ExtractedFiles: []models.ExtractedFile{
			{Name: "a.txt", Data: []byte("hello")},
		},
	}
	out, err := Build(payload, "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(r.File) != 1 || r.File[0].Name != "a.txt" {
		t.Fatalf("unexpected zip contents: %+v", r.File)
	}
}

func TestBuildRequiresPasswordWhenEncrypted(t *testing.T) {
	payload := &models.ExtractedPayload{
		Metadata:       &models.HeaderBlocks{CF: "0", EF: "1"},
		ExtractedFiles: []models.ExtractedFile{{Name: "a.txt", Data: []byte("x")}},
	}
	if _, err := Build(payload, ""); err == nil {
		t.Fatal("expected RequirePassword when EF=1 and no passphrase given")
	}
}

func TestBuildCompressedEncrypted(t *testing.T) {
	plain := []byte("the quick brown fox jumps over the lazy dog")
	compressed, err := codec.Compress(plain)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	envelope, err := cryptor.Encrypt("pw", compressed)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	payload := &models.ExtractedPayload{
		Metadata:       &models.HeaderBlocks{CF: "1", EF: "1"},
		ExtractedFiles: []models.ExtractedFile{{Name: "a.txt", Data: envelope}},
	}
	out, err := Build(payload, "pw")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	rc, err := r.File[0].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	var got bytes.Buffer
	if _, err := got.ReadFrom(rc); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if got.String() != string(plain) {
		t.Fatalf("got %q want %q", got.String(), plain)
	}
}
