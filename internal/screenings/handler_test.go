package screenings

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/documents"
	"screening-backend/internal/shared/server/middleware"
)

func setupScreeningRouter(t *testing.T) (*gin.Engine, *MemoryRepo, *documents.MemoryRepo, *stubQueue) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, repo, docRepo, store, queueStub := newTestService(t, stubLLM{})
	docSvc := &documents.Service{Store: store, Repo: docRepo}
	handler := NewHandler(svc, docSvc)

	router := gin.New()
	router.Use(middleware.Auth("dev"))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, repo, docRepo, queueStub
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func TestScreenTextAccepted(t *testing.T) {
	router, repo, _, queueStub := setupScreeningRouter(t)

	payload := map[string]string{
		"jobTitle":       "Backend Engineer",
		"jobDescription": "Build APIs in Python.",
		"resumeText":     "python developer resume",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenings/text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ScreeningID string `json:"screeningId"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ScreeningID == "" {
		t.Fatal("expected screeningId")
	}
	if created.Status != StatusQueued {
		t.Fatalf("expected queued, got %q", created.Status)
	}
	if len(queueStub.messages) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(queueStub.messages))
	}

	stored, err := repo.GetByID(context.Background(), created.ScreeningID)
	if err != nil {
		t.Fatalf("get screening: %v", err)
	}
	if stored.JobTitle != "Backend Engineer" {
		t.Fatalf("expected job title stored, got %q", stored.JobTitle)
	}
}

func TestScreenTextValidation(t *testing.T) {
	router, _, _, _ := setupScreeningRouter(t)

	body, _ := json.Marshal(map[string]string{"resumeText": "resume"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenings/text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestScreenFileAccepted(t *testing.T) {
	router, repo, docRepo, _ := setupScreeningRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("jobTitle", "Backend Engineer"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.WriteField("jobDescription", "Build APIs."); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("python developer resume")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenings/file", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ScreeningID string `json:"screeningId"`
		DocumentID  string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatal("expected documentId")
	}

	stored, err := repo.GetByID(context.Background(), created.ScreeningID)
	if err != nil {
		t.Fatalf("get screening: %v", err)
	}
	if stored.Kind != KindFile {
		t.Fatalf("expected kind file, got %q", stored.Kind)
	}
	if _, err := docRepo.GetByID(context.Background(), "guest:test-guest", created.DocumentID); err != nil {
		t.Fatalf("expected document stored: %v", err)
	}
}

func TestScreenBatchRejectsTooManyFiles(t *testing.T) {
	router, _, _, _ := setupScreeningRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("jobDescription", "Build APIs."); err != nil {
		t.Fatalf("write field: %v", err)
	}
	for i := 0; i <= MaxBatchDocuments; i++ {
		part, err := writer.CreateFormFile("files", "resume-"+strconv.Itoa(i)+".txt")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("resume")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenings/batch", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGetScreeningIncludesResult(t *testing.T) {
	router, repo, _, _ := setupScreeningRouter(t)

	screening := Screening{
		ID:     "screening-1",
		UserID: "guest:test-guest",
		Kind:   KindText,
		Status: StatusCompleted,
		Result: map[string]any{
			"score": map[string]any{"overall_score": 88.5},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), screening); err != nil {
		t.Fatalf("create screening: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screenings/screening-1", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != StatusCompleted {
		t.Fatalf("expected completed, got %v", payload["status"])
	}
	result, ok := payload["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result, got %v", payload["result"])
	}
	score, _ := result["score"].(map[string]any)
	if score["overall_score"] != 88.5 {
		t.Fatalf("expected overall score 88.5, got %v", score["overall_score"])
	}
}

func TestGetScreeningNotFound(t *testing.T) {
	router, _, _, _ := setupScreeningRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screenings/unknown", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListScreeningsRequiresLogin(t *testing.T) {
	router, _, _, _ := setupScreeningRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screenings", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestListScreeningsReturnsSummaries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	handler := NewHandler(svc, nil)

	screening := Screening{
		ID:       "screening-list",
		UserID:   "user-1",
		Kind:     KindText,
		JobTitle: "Backend Engineer",
		Status:   StatusCompleted,
		Result: map[string]any{
			"score": map[string]any{
				"overall_score":  91.2,
				"recommendation": map[string]any{"tier": "exceptional"},
			},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), screening); err != nil {
		t.Fatalf("create screening: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/screenings", nil)
	c.Set("userId", "user-1")
	c.Set("isGuest", false)

	handler.list(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var payload []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected 1 item, got %d", len(payload))
	}
	summary, ok := payload[0]["summary"].(map[string]any)
	if !ok {
		t.Fatalf("expected summary, got %v", payload[0]["summary"])
	}
	if summary["overallScore"] != 91.2 {
		t.Fatalf("expected overallScore 91.2, got %v", summary["overallScore"])
	}
	if summary["recommendation"] != "exceptional" {
		t.Fatalf("expected recommendation tier, got %v", summary["recommendation"])
	}
}

func TestMethodologyEndpoint(t *testing.T) {
	router, _, _, _ := setupScreeningRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screenings/methodology", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := payload["pillar_weights"]; !ok {
		t.Fatal("expected pillar_weights")
	}
	if _, ok := payload["recommendation_thresholds"]; !ok {
		t.Fatal("expected recommendation_thresholds")
	}
}
