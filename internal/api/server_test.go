package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/docforge/internal/config"
	"github.com/dgallion1/docforge/internal/pipeline"
)

func testServer(t *testing.T) (*Server, *pipeline.Orchestrator) {
	t.Helper()
	cfg := config.Config{
		DocforgeAPIKey: "secret",
		WorkerCount:    1,
		MaxQueueSize:   4,
		MaxUploadBytes: 1 << 20,
		OutputDir:      filepath.Join(t.TempDir(), "out"),
		DefaultBackend: "markup",
		JobTTL:         time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, log, cfg), orch
}

func TestServer_HealthIsPublic(t *testing.T) {
	s, _ := testServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestServer_AuthRequired(t *testing.T) {
	s, _ := testServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/render", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats/render", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stats/render", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func multipartSpec(t *testing.T, spec string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("spec", "report.yaml")
	if err != nil {
		t.Fatalf("create spec part: %v", err)
	}
	part.Write([]byte(spec))
	for name, content := range files {
		p, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		p.Write([]byte(content))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestServer_SubmitAndFetchOutput(t *testing.T) {
	s, orch := testServer(t)

	spec := "title: Run Report\noutline: outline.txt\nsections:\n  - title: Results\n    text: All green.\n"
	body, contentType := multipartSpec(t, spec, map[string]string{"outline.txt": "Intro\nResults\n"})

	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		job := orch.GetJob(resp.JobID)
		if job != nil && job.Snapshot().Status == pipeline.StatusCompleted {
			break
		}
		if job != nil && job.Snapshot().Status == pipeline.StatusFailed {
			t.Fatalf("job failed: %v", job.Snapshot().Progress.Errors)
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for completion")
		case <-time.After(10 * time.Millisecond):
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reports/"+resp.JobID+"/output", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for output, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("# Results")) {
		t.Errorf("unexpected output:\n%s", rec.Body.String())
	}
}

func TestServer_InvalidSpecRejected(t *testing.T) {
	s, _ := testServer(t)

	body, contentType := multipartSpec(t, "headers:\n  nowhere: x\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", body)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestServer_StatusNotFound(t *testing.T) {
	s, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/reports/unknown/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
