// Package service is the orchestration layer implementing the three
// external operations (inspect, embed, extract): it normalizes
// uploads into []secretfile.SecretFile, wires the audio codec, engine,
// and archivebuilder collaborators together, and is what handlers
// calls.
package service

import "github.com/ciphernest/stego/models"

// UploadedSecretFile is the raw shape an HTTP multipart upload
// arrives in before it is normalized into a secretfile.SecretFile.
type UploadedSecretFile struct {
	Name string
	Data []byte
}

// InspectRequest holds the inputs to the "inspect" operation.
type InspectRequest struct {
	CoverAudio    []byte
	CoverFilename string
	Quality       models.Quality
	Compressed    bool
	Passphrase    string
	SecretFiles   []UploadedSecretFile
}

// InspectResult discriminates between "already embedded" and
// "free space available".
type InspectResult struct {
	AlreadyEmbedded bool
	FreeSpaceBytes  int64
	Filenames       []string
	Sizes           []int64
	Version         string
}

// EmbedRequest holds the inputs to the "embed" operation.
type EmbedRequest struct {
	CoverAudio    []byte
	CoverFilename string
	Quality       models.Quality
	Compressed    bool
	Passphrase    string
	SecretFiles   []UploadedSecretFile
}

// ExtractRequest holds the inputs to the "extract" operation.
type ExtractRequest struct {
	CoverAudio    []byte
	CoverFilename string
	Passphrase    string
}

// ExtractResult bundles the parsed metadata with the caller-facing
// zip archive the archivebuilder assembles.
type ExtractResult struct {
	Payload *models.ExtractedPayload
	Archive []byte
}

// Steganography is the orchestration interface handlers depends on.
// A hand-written gomock mock of this interface (steganography_mock.go)
// is used by the handler tests.
type Steganography interface {
	Inspect(req *InspectRequest) (*InspectResult, error)
	Embed(req *EmbedRequest) ([]byte, error)
	Extract(req *ExtractRequest) (*ExtractResult, error)
}
