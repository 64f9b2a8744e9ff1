package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/ciphernest/stego/models"
	"github.com/ciphernest/stego/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartAudioRequest(t *testing.T, extra map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "cover.wav")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("RIFF....WAVEfmt "))
	for k, v := range extra {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/inspect", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestInspectHandlerAlreadyEmbedded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mock := NewMockSteganography(ctrl)
	mock.EXPECT().Inspect(gomock.Any()).Return(&service.InspectResult{
		AlreadyEmbedded: true,
		Filenames:       []string{"a.txt"},
		Sizes:           []int64{52},
		Version:         "1.0",
	}, nil)

	h := NewHandlers(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartAudioRequest(t, nil)

	h.InspectHandler(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.InspectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Code != models.CodeAlreadyEmbedded {
		t.Fatalf("expected code %s, got %s", models.CodeAlreadyEmbedded, resp.Code)
	}
}

func TestInspectHandlerMapsRequirePasswordTo400(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mock := NewMockSteganography(ctrl)
	mock.EXPECT().Inspect(gomock.Any()).Return(nil, models.NewError(models.KindRequirePassword, ""))

	h := NewHandlers(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartAudioRequest(t, nil)

	h.InspectHandler(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Error.Code != models.CodeRequirePassword {
		t.Fatalf("expected code %s, got %s", models.CodeRequirePassword, resp.Error.Code)
	}
}

func TestInspectHandlerMissingAudioFile(t *testing.T) {
	h := NewHandlers(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/inspect", bytes.NewReader(nil))
	c.Request.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	h.InspectHandler(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		models.CodeSuccess:             http.StatusOK,
		models.CodeAlreadyEmbedded:     http.StatusOK,
		models.CodeInternal:            http.StatusInternalServerError,
		models.CodeRunOutOfFreeSpace:   http.StatusBadRequest,
		models.CodeNotEmbeddedBySystem: http.StatusBadRequest,
		models.CodeInvalidRequest:      http.StatusBadRequest,
		models.CodeWrongPassword:       http.StatusBadRequest,
		models.CodeDataCorrupted:       http.StatusBadRequest,
		models.CodeRequirePassword:     http.StatusBadRequest,
	}
	for code, want := range cases {
		if got := statusForCode(code); got != want {
			t.Errorf("code %s: got %d want %d", code, got, want)
		}
	}
}
