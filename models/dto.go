package models

// InspectResponse is returned by the inspect operation. Exactly one
// of the "already embedded" fields or FreeSpaceBytes is populated,
// discriminated by Code.
type InspectResponse struct {
	Code           string   `json:"code"`
	FreeSpaceBytes int64    `json:"free_space_bytes,omitempty"`
	Filenames      []string `json:"filenames,omitempty"`
	Sizes          []int64  `json:"sizes,omitempty"`
	Version        string   `json:"version,omitempty"`
}

// ExtractResponseFile mirrors one entry of ExtractedPayload.ExtractedFiles
// for JSON/metadata responses that accompany the zip body.
type ExtractResponseFile struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds the standard JSON error envelope from a
// StegoError.
func NewErrorResponse(e *StegoError) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    e.Code,
			Message: e.Message,
		},
	}
}
