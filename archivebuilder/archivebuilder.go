// Package archivebuilder assembles the HTTP-facing zip archive from an
// extracted payload: it applies the inverse of the compression/
// encryption matrix per extracted file and streams the results into a
// zip archive for the response.
package archivebuilder

import (
	"archive/zip"
	"bytes"

	"github.com/ciphernest/stego/codec"
	"github.com/ciphernest/stego/cryptor"
	"github.com/ciphernest/stego/models"
)

// Build decrypts (if encrypted) and decompresses (if compressed) each
// file in payload per its header flags, then streams the plaintext
// bytes into a zip archive. AES-CBC padding failures surface here as
// DataCorrupted; payload integrity is never checked by the core
// extract path, only here.
func Build(payload *models.ExtractedPayload, passphrase string) ([]byte, error) {
	if payload.IsEncrypted() && passphrase == "" {
		return nil, models.NewError(models.KindRequirePassword, "")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range payload.ExtractedFiles {
		data, err := inverseMatrix(payload, f.Data, passphrase)
		if err != nil {
			return nil, err
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, models.NewErrorf(models.KindInternal, "archivebuilder: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, models.NewErrorf(models.KindInternal, "archivebuilder: %v", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "archivebuilder: %v", err)
	}
	return buf.Bytes(), nil
}

func inverseMatrix(payload *models.ExtractedPayload, data []byte, passphrase string) ([]byte, error) {
	if payload.IsEncrypted() {
		plain, err := cryptor.Decrypt(passphrase, data)
		if err != nil {
			return nil, err
		}
		data = plain
	}
	if payload.IsCompressed() {
		plain, err := codec.Decompress(data)
		if err != nil {
			return nil, err
		}
		data = plain
	}
	return data, nil
}
