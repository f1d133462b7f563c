package screenings

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/documents"
	"screening-backend/internal/scoring"
	"screening-backend/internal/shared/server/middleware"
	"screening-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB per resume

// Handler wires HTTP handlers to the screenings service.
type Handler struct {
	Svc  *Service
	Docs *documents.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs *documents.Service) *Handler {
	return &Handler{Svc: svc, Docs: docs}
}

// RegisterRoutes attaches screening routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/screenings/text", h.screenText)
	rg.POST("/screenings/file", h.screenFile)
	rg.POST("/screenings/batch", h.screenBatch)
	rg.GET("/screenings", h.list)
	rg.GET("/screenings/methodology", h.methodology)
	rg.GET("/screenings/:id", h.get)
}

type screenTextRequest struct {
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText"`
}

func (h *Handler) screenText(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req screenTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription is required", nil)
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeText is required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	screening, err := h.Svc.CreateFromText(ctx, userID, req.JobTitle, req.JobDescription, req.ResumeText)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start screening", nil)
		return
	}

	respond.Accepted(c, gin.H{
		"screeningId": screening.ID,
		"status":      screening.Status,
	})
}

func (h *Handler) screenFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+1<<20)

	jobTitle := strings.TrimSpace(c.PostForm("jobTitle"))
	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	doc, ok := h.uploadResume(c, userID, fileHeader)
	if !ok {
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	screening, err := h.Svc.CreateFromDocument(ctx, userID, jobTitle, jobDescription, doc.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start screening", nil)
		return
	}

	respond.Accepted(c, gin.H{
		"screeningId": screening.ID,
		"documentId":  doc.ID,
		"status":      screening.Status,
	})
}

func (h *Handler) screenBatch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(MaxBatchDocuments)*maxUploadSize)

	jobTitle := strings.TrimSpace(c.PostForm("jobTitle"))
	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription is required", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}
	if len(files) > MaxBatchDocuments {
		respond.Error(c, http.StatusBadRequest, "validation_error", "batch is limited to "+strconv.Itoa(MaxBatchDocuments)+" files", nil)
		return
	}

	documentIDs := make([]string, 0, len(files))
	for _, fileHeader := range files {
		doc, ok := h.uploadResume(c, userID, fileHeader)
		if !ok {
			return
		}
		documentIDs = append(documentIDs, doc.ID)
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	screening, err := h.Svc.CreateBatch(ctx, userID, jobTitle, jobDescription, documentIDs)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start screening", nil)
		return
	}

	respond.Accepted(c, gin.H{
		"screeningId": screening.ID,
		"documentIds": documentIDs,
		"status":      screening.Status,
	})
}

func (h *Handler) uploadResume(c *gin.Context, userID string, fileHeader *multipart.FileHeader) (documents.Document, bool) {
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file "+fileHeader.Filename+" exceeds the 10MB limit", nil)
		return documents.Document{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file "+fileHeader.Filename, nil)
		return documents.Document{}, false
	}
	defer file.Close()

	doc, err := h.Docs.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		}
		return documents.Document{}, false
	}
	return doc, true
}

func (h *Handler) get(c *gin.Context) {
	screeningID := c.Param("id")
	if screeningID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "screening id is required", nil)
		return
	}

	screening, err := h.Svc.Get(c.Request.Context(), screeningID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "screening not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch screening", nil)
		}
		return
	}

	resp := gin.H{
		"id":     screening.ID,
		"kind":   screening.Kind,
		"status": screening.Status,
	}
	if screening.Status == StatusCompleted && screening.Result != nil {
		resp["result"] = screening.Result
	}
	if screening.Status == StatusFailed {
		resp["errorCode"] = screening.ErrorCode
		if screening.ErrorMessage != nil {
			resp["errorMessage"] = *screening.ErrorMessage
		}
		resp["retryable"] = screening.ErrorRetryable
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) list(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	screenings, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list screenings", nil)
		return
	}

	resp := make([]gin.H, 0, len(screenings))
	for _, s := range screenings {
		item := gin.H{
			"screeningId": s.ID,
			"kind":        s.Kind,
			"jobTitle":    s.JobTitle,
			"status":      s.Status,
			"createdAt":   s.CreatedAt,
		}
		if s.Status == StatusCompleted && s.Result != nil {
			if summary := resultSummary(s.Result); summary != nil {
				item["summary"] = summary
			}
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) methodology(c *gin.Context) {
	respond.JSON(c, http.StatusOK, scoring.Methodology())
}

// resultSummary extracts the headline numbers from a stored result without
// shipping the full breakdown in list responses.
func resultSummary(result map[string]any) gin.H {
	if score, ok := result["score"].(map[string]any); ok {
		summary := gin.H{}
		if v, ok := score["overall_score"]; ok {
			summary["overallScore"] = v
		}
		if rec, ok := score["recommendation"].(map[string]any); ok {
			if tier, ok := rec["tier"]; ok {
				summary["recommendation"] = tier
			}
		}
		if len(summary) > 0 {
			return summary
		}
		return nil
	}
	if batch, ok := result["batch"].(map[string]any); ok {
		summary := gin.H{}
		if v, ok := batch["average_score"]; ok {
			summary["averageScore"] = v
		}
		if results, ok := batch["results"].([]any); ok {
			summary["resumeCount"] = len(results)
		}
		if len(summary) > 0 {
			return summary
		}
	}
	return nil
}
