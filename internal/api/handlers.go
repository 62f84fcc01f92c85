package api

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MohammedAly22/Accent-Detective/internal/chart"
	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/MohammedAly22/Accent-Detective/internal/pipeline"
	"github.com/MohammedAly22/Accent-Detective/internal/storage"
	"github.com/MohammedAly22/Accent-Detective/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedExts are the media formats accepted for analysis
var allowedExts = []string{".wav", ".mp3", ".m4a", ".mp4", ".mov", ".avi", ".mkv", ".webm"}

// Handler carries the pipeline and request limits shared by all routes.
type Handler struct {
	pipe           *pipeline.Pipeline
	maxUploadBytes int64
}

// NewHandler creates the API handler
func NewHandler(pipe *pipeline.Pipeline, maxUploadMB int64) *Handler {
	return &Handler{
		pipe:           pipe,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// RegisterRoutes wires all routes onto the engine
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", healthCheck)

	// Web UI
	r.GET("/", indexPage)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyses", h.createAnalysis)
		v1.GET("/analyses", listAnalyses)
		v1.GET("/analyses/:analysis_id", getAnalysis)
		v1.GET("/analyses/:analysis_id/status", getAnalysisStatus)
		v1.GET("/analyses/:analysis_id/chart", getAnalysisChart)
		v1.DELETE("/analyses/:analysis_id", deleteAnalysis)
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "accent-detective",
	})
}

// indexPage renders the web UI
func indexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Formats": strings.Join(allowedExts, ", "),
	})
}

// AnalyzeURLRequest is the JSON body for URL-based analysis
type AnalyzeURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// createAnalysis accepts either a multipart media upload or a JSON body with
// a video URL, and runs the whole pipeline synchronously.
func (h *Handler) createAnalysis(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	log.Printf("[Analyze] Content-Type: %s", contentType)

	if strings.HasPrefix(contentType, "application/json") {
		h.analyzeURL(c)
		return
	}
	h.analyzeUpload(c)
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	file, err := c.FormFile("media_file")
	if err != nil {
		// Try alternative field names
		if file, err = c.FormFile("media"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, "media_file is required. Error: "+err.Error())
				return
			}
		}
	}

	// Validate file extension before any pipeline work
	if !ExtensionAllowed(file.Filename) {
		utils.Error(c, http.StatusBadRequest,
			"unsupported media format. Supported: wav, mp3, m4a, mp4, mov, avi, mkv, webm")
		return
	}

	// Validate file size
	if file.Size > h.maxUploadBytes {
		utils.Error(c, http.StatusBadRequest,
			"file size exceeds "+strconv.FormatInt(h.maxUploadBytes>>20, 10)+"MB limit")
		return
	}

	mediaPath, err := storage.SaveUpload(file)
	if err != nil {
		log.Printf("[Analyze] Error saving upload: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to save media file")
		return
	}

	log.Printf("[Analyze] Upload saved: %s (%d bytes)", mediaPath, file.Size)

	a, err := h.pipe.AnalyzeUpload(c.Request.Context(), mediaPath, file.Filename, file.Size)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to process the media: "+err.Error())
		return
	}

	persistAnalysis(c, a)
	utils.Success(c, analysisResponse(a))
}

func (h *Handler) analyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "a valid url is required")
		return
	}

	log.Printf("[Analyze] URL request: %s", req.URL)

	a, err := h.pipe.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to process the video: "+err.Error())
		return
	}

	persistAnalysis(c, a)
	utils.Success(c, analysisResponse(a))
}

// getAnalysis returns a stored analysis
func getAnalysis(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	a, ok := storage.GetAnalysis(id)
	if !ok {
		if analysisRepo != nil {
			if stored, err := analysisRepo.GetByID(c.Request.Context(), id); err == nil {
				utils.Success(c, analysisResponse(stored))
				return
			}
		}
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	utils.Success(c, analysisResponse(a))
}

// getAnalysisStatus returns only the status of an analysis
func getAnalysisStatus(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	a, ok := storage.GetAnalysis(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	utils.Success(c, gin.H{
		"analysis_id": a.ID.String(),
		"status":      a.Status,
	})
}

// getAnalysisChart renders the accent score bar chart as an HTML page
func getAnalysisChart(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	a, ok := storage.GetAnalysis(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	if len(a.AccentScores) == 0 {
		utils.Error(c, http.StatusBadRequest, "analysis has no accent scores to chart")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := chart.RenderAccentBar(c.Writer, a.AccentScores); err != nil {
		log.Printf("[Chart] Render error for analysis %s: %v", id, err)
		utils.Error(c, http.StatusInternalServerError, "failed to render chart")
		return
	}
}

// listAnalyses returns recent analyses, DB-backed when configured
func listAnalyses(c *gin.Context) {
	limit, offset := parsePagination(c)

	if analysisRepo != nil {
		items, err := analysisRepo.List(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[List] Repository error: %v", err)
			utils.Error(c, http.StatusInternalServerError, "failed to list analyses")
			return
		}
		utils.Success(c, listResponse(items, limit, offset))
		return
	}

	stored := storage.ListAnalyses(limit)
	items := make([]model.Analysis, 0, len(stored))
	for _, a := range stored {
		items = append(items, *a)
	}
	utils.Success(c, listResponse(items, limit, offset))
}

// deleteAnalysis removes an analysis
func deleteAnalysis(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	deleted := storage.DeleteAnalysis(id)
	if analysisRepo != nil {
		if err := analysisRepo.Delete(c.Request.Context(), id); err == nil {
			deleted = true
		}
	}

	if !deleted {
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	log.Printf("[Delete] Analysis deleted: %s", id)
	utils.Success(c, gin.H{
		"analysis_id": id.String(),
		"status":      "deleted",
	})
}

// ExtensionAllowed reports whether the filename has a supported media
// extension.
func ExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func parseAnalysisID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.Param("analysis_id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid analysis_id format")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// analysisResponse shapes an analysis for the JSON envelope.
func analysisResponse(a *model.Analysis) gin.H {
	resp := gin.H{
		"analysis_id": a.ID.String(),
		"title":       a.Title,
		"source":      a.Source,
		"status":      a.Status,
		"created_at":  a.CreatedAt,
	}

	if a.SourceURL != nil {
		resp["source_url"] = *a.SourceURL
	}
	if a.AudioFormat != nil {
		resp["audio_format"] = *a.AudioFormat
	}
	if a.AudioDurationMs != nil {
		resp["audio_duration_ms"] = *a.AudioDurationMs
	}
	if a.AudioSizeBytes != nil {
		resp["audio_size_bytes"] = *a.AudioSizeBytes
	}
	if a.Transcript != nil {
		resp["transcript"] = *a.Transcript
	}
	if a.Language != nil {
		resp["language"] = *a.Language
	}
	if a.Accent != nil {
		resp["accent"] = *a.Accent
	}
	if len(a.AccentScores) > 0 {
		resp["accent_scores"] = a.AccentScores
	}
	if a.Confidence != nil {
		resp["confidence"] = *a.Confidence
	}
	if a.Quality != nil {
		resp["quality"] = *a.Quality
	}
	if a.ErrorMessage != nil {
		resp["error_message"] = *a.ErrorMessage
	}
	if a.ProcessingTimeMs != nil {
		resp["processing_time_ms"] = *a.ProcessingTimeMs
	}

	return resp
}

func listResponse(items []model.Analysis, limit, offset int) gin.H {
	out := make([]gin.H, 0, len(items))
	for i := range items {
		item := analysisResponse(&items[i])

		// Trim transcript to a preview in listings
		if t, ok := item["transcript"].(string); ok && len(t) > 100 {
			item["transcript"] = t[:100] + "..."
		}
		out = append(out, item)
	}

	return gin.H{
		"items":  out,
		"limit":  limit,
		"offset": offset,
		"count":  len(out),
	}
}
