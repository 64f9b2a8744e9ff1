// Package handlers is the Gin HTTP layer mapping the three external
// operations (inspect, embed, extract) onto routes, response codes,
// and HTTP statuses (request-id logging, sendStegoError envelope,
// X-Processing-Time header).
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ciphernest/stego/models"
	"github.com/ciphernest/stego/service"
)

// Handlers holds the orchestration service dependency.
type Handlers struct {
	stego service.Steganography
}

// NewHandlers creates a new handlers instance with its service
// dependency injected.
func NewHandlers(stego service.Steganography) *Handlers {
	return &Handlers{stego: stego}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// HealthHandler handles the health check endpoint.
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	})
}

// InspectHandler either reports an existing embedded payload (code
// 03) or the remaining free space for a hypothetical embed (code 00).
func (h *Handlers) InspectHandler(c *gin.Context) {
	requestID := traceID(c)
	log.Printf("[INFO] [%s] InspectHandler: request from %s", requestID, c.ClientIP())

	audioData, filename, err := readCoverAudio(c)
	if err != nil {
		sendStegoError(c, requestID, "InspectHandler", err)
		return
	}

	req := &service.InspectRequest{
		CoverAudio:    audioData,
		CoverFilename: filename,
		Quality:       models.Quality(c.DefaultPostForm("quality", string(models.QualityMedium))),
		Compressed:    c.PostForm("compressed") == "true",
		Passphrase:    c.PostForm("passphrase"),
		SecretFiles:   readSecretFiles(c),
	}

	result, err := h.stego.Inspect(req)
	if err != nil {
		sendStegoError(c, requestID, "InspectHandler", err)
		return
	}

	if result.AlreadyEmbedded {
		c.JSON(http.StatusOK, models.InspectResponse{
			Code:      models.CodeAlreadyEmbedded,
			Filenames: result.Filenames,
			Sizes:     result.Sizes,
			Version:   result.Version,
		})
		return
	}

	if result.FreeSpaceBytes < 0 {
		sendStegoError(c, requestID, "InspectHandler", models.NewError(models.KindRunOutOfFreeSpace, ""))
		return
	}

	c.JSON(http.StatusOK, models.InspectResponse{
		Code:           models.CodeSuccess,
		FreeSpaceBytes: result.FreeSpaceBytes,
	})
}

// EmbedHandler returns the re-encoded carrier, same container as the
// input, with the secret files embedded.
func (h *Handlers) EmbedHandler(c *gin.Context) {
	requestID := traceID(c)
	startTime := time.Now()
	log.Printf("[INFO] [%s] EmbedHandler: request from %s", requestID, c.ClientIP())

	audioData, filename, err := readCoverAudio(c)
	if err != nil {
		sendStegoError(c, requestID, "EmbedHandler", err)
		return
	}

	secretFiles := readSecretFiles(c)
	if len(secretFiles) == 0 {
		sendStegoError(c, requestID, "EmbedHandler", models.NewError(models.KindInvalidArgument, "at least one secret file is required"))
		return
	}

	req := &service.EmbedRequest{
		CoverAudio:    audioData,
		CoverFilename: filename,
		Quality:       models.Quality(c.DefaultPostForm("quality", string(models.QualityMedium))),
		Compressed:    c.PostForm("compressed") == "true",
		Passphrase:    c.PostForm("passphrase"),
		SecretFiles:   secretFiles,
	}

	out, err := h.stego.Embed(req)
	if err != nil {
		sendStegoError(c, requestID, "EmbedHandler", err)
		return
	}

	processingTime := time.Since(startTime).Milliseconds()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Processing-Time", strconv.FormatInt(processingTime, 10))
	c.Data(http.StatusOK, "application/octet-stream", out)
}

// ExtractHandler returns a zip archive of the recovered files.
func (h *Handlers) ExtractHandler(c *gin.Context) {
	requestID := traceID(c)
	startTime := time.Now()
	log.Printf("[INFO] [%s] ExtractHandler: request from %s", requestID, c.ClientIP())

	audioData, filename, err := readCoverAudio(c)
	if err != nil {
		sendStegoError(c, requestID, "ExtractHandler", err)
		return
	}

	req := &service.ExtractRequest{
		CoverAudio:    audioData,
		CoverFilename: filename,
		Passphrase:    c.PostForm("passphrase"),
	}

	result, err := h.stego.Extract(req)
	if err != nil {
		sendStegoError(c, requestID, "ExtractHandler", err)
		return
	}

	processingTime := time.Since(startTime).Milliseconds()
	c.Header("Content-Disposition", "attachment; filename=\"extracted.zip\"")
	c.Header("X-Processing-Time", strconv.FormatInt(processingTime, 10))
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

func readCoverAudio(c *gin.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return nil, "", models.NewError(models.KindInvalidArgument, "audio file not provided")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", models.NewErrorf(models.KindInternal, "failed to open uploaded file: %v", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", models.NewErrorf(models.KindInternal, "failed to read uploaded file: %v", err)
	}
	return data, fileHeader.Filename, nil
}

func readSecretFiles(c *gin.Context) []service.UploadedSecretFile {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	headers := form.File["secret_files"]
	files := make([]service.UploadedSecretFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		files = append(files, service.UploadedSecretFile{Name: fh.Filename, Data: data})
	}
	return files
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return c.GetHeader("X-Trace-Id")
}

// sendStegoError maps a core error to the response-code table and HTTP
// status: 200 is never reached here (callers only invoke this on
// failure), 400 for client-fault codes, 500 for internal errors.
func sendStegoError(c *gin.Context, requestID, component string, err error) {
	se := models.AsStegoError(err)
	log.Printf("[ERROR] [%s] %s: %s: %s", requestID, component, se.Code, se.Message)
	c.JSON(statusForCode(se.Code), models.NewErrorResponse(se))
}

func statusForCode(code string) int {
	switch code {
	case models.CodeSuccess, models.CodeAlreadyEmbedded:
		return http.StatusOK
	case models.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
