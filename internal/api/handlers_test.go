package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/MohammedAly22/Accent-Detective/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestExtensionAllowed(t *testing.T) {
	allowed := []string{
		"talk.wav", "song.mp3", "memo.m4a", "clip.MP4",
		"screen.mov", "cam.avi", "rip.mkv", "stream.webm",
	}
	for _, name := range allowed {
		if !ExtensionAllowed(name) {
			t.Errorf("ExtensionAllowed(%q) = false, want true", name)
		}
	}

	rejected := []string{
		"doc.pdf", "notes.txt", "archive.zip", "photo.jpg",
		"audio.flac", "noextension", "", "wav",
	}
	for _, name := range rejected {
		if ExtensionAllowed(name) {
			t.Errorf("ExtensionAllowed(%q) = true, want false", name)
		}
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil, 25)
	v1 := r.Group("/api/v1")
	v1.POST("/analyses", h.createAnalysis)
	v1.GET("/analyses/:analysis_id", getAnalysis)
	v1.GET("/analyses/:analysis_id/status", getAnalysisStatus)
	v1.GET("/analyses/:analysis_id/chart", getAnalysisChart)
	return r
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func doRequest(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not JSON envelope: %v: %s", err, w.Body.String())
	}
	return w, env
}

func TestCreateAnalysisRejectsUnsupportedExtension(t *testing.T) {
	r := newTestRouter()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("media_file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("definitely not audio"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w, env := doRequest(t, r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success = true for rejected upload")
	}
	if env.Error == "" {
		t.Error("error message missing")
	}
}

func TestCreateAnalysisRequiresFile(t *testing.T) {
	r := newTestRouter()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("note", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w, env := doRequest(t, r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success = true for missing file")
	}
}

func TestCreateAnalysisRejectsInvalidURLBody(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses",
		bytes.NewBufferString(`{"url": "not a url"}`))
	req.Header.Set("Content-Type", "application/json")

	w, env := doRequest(t, r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success = true for invalid url")
	}
}

func TestGetAnalysis(t *testing.T) {
	r := newTestRouter()

	transcript := "Right, let's get started then."
	lang := "en"
	a := &model.Analysis{
		ID:         uuid.New(),
		Title:      "clip.mp4",
		Source:     model.SourceUpload,
		Status:     model.StatusProcessed,
		Transcript: &transcript,
		Language:   &lang,
		CreatedAt:  time.Now(),
	}
	storage.SaveAnalysis(a)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+a.ID.String(), nil)
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !env.Success {
		t.Fatalf("success = false: %s", env.Error)
	}
	if env.Data["transcript"] != transcript {
		t.Errorf("transcript = %v", env.Data["transcript"])
	}
	if env.Data["language"] != "en" {
		t.Errorf("language = %v", env.Data["language"])
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), nil)
	w, _ := doRequest(t, r, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetAnalysisBadID(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
	w, _ := doRequest(t, r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetAnalysisStatus(t *testing.T) {
	r := newTestRouter()

	a := &model.Analysis{
		ID:        uuid.New(),
		Title:     "clip.wav",
		Source:    model.SourceUpload,
		Status:    model.StatusFailed,
		CreatedAt: time.Now(),
	}
	storage.SaveAnalysis(a)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+a.ID.String()+"/status", nil)
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Data["status"] != model.StatusFailed {
		t.Errorf("status field = %v, want failed", env.Data["status"])
	}
}

func TestGetAnalysisChartWithoutScores(t *testing.T) {
	r := newTestRouter()

	a := &model.Analysis{
		ID:        uuid.New(),
		Title:     "clip.wav",
		Source:    model.SourceUpload,
		Status:    model.StatusProcessed,
		CreatedAt: time.Now(),
	}
	storage.SaveAnalysis(a)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+a.ID.String()+"/chart", nil)
	w, env := doRequest(t, r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env.Success {
		t.Error("success = true for chart without scores")
	}
}
