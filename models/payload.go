package models

// ExtractedFile is one recovered secret: its declared name and the raw
// on-wire bytes exactly as read off the carrier (before the archive
// builder applies the decompression/decryption inverse).
type ExtractedFile struct {
	Name string
	Data []byte
}

// HeaderBlocks is the parsed, still-raw representation of a header: the
// UTF-8 decoded metadata blocks plus the raw HMAC bytes.
type HeaderBlocks struct {
	Depth     int
	CF        string
	EF        string
	Version   string
	Filenames string
	Sizes     string
	HMAC      []byte
}

func (h *HeaderBlocks) IsCompressed() bool { return h.CF == "1" }
func (h *HeaderBlocks) IsEncrypted() bool  { return h.EF == "1" }

// ExtractedPayload is the result of a successful engine.ExtractData call: the
// parsed header metadata plus the ordered list of recovered files.
type ExtractedPayload struct {
	Metadata       *HeaderBlocks
	ExtractedFiles []ExtractedFile
}

func (p *ExtractedPayload) IsEncrypted() bool { return p.Metadata.IsEncrypted() }
func (p *ExtractedPayload) IsCompressed() bool { return p.Metadata.IsCompressed() }
func (p *ExtractedPayload) Version() string    { return p.Metadata.Version }

func (p *ExtractedPayload) Filenames() []string {
	names := make([]string, len(p.ExtractedFiles))
	for i, f := range p.ExtractedFiles {
		names[i] = f.Name
	}
	return names
}
