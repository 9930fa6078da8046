package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docforge/internal/pipeline"
	"github.com/dgallion1/docforge/internal/reportspec"
)

// handleSubmitReport accepts a multipart form with a "spec" YAML file and
// any number of "files" entries (section sources the spec refers to). The
// upload lands in a per-job working directory that the worker builds from.
func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with 1MB slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	specFile, specHeader, err := r.FormFile("spec")
	if err != nil {
		jsonError(w, "spec is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer specFile.Close()

	specData, err := io.ReadAll(io.LimitReader(specFile, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read spec", http.StatusInternalServerError)
		return
	}
	if int64(len(specData)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("spec exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Fail fast on specs that will never build.
	if _, err := reportspec.Parse(specData); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	backendName := r.FormValue("backend")
	if backendName != "" {
		switch backendName {
		case "markup", "html", "command":
		default:
			jsonError(w, fmt.Sprintf("unknown backend %q", backendName), http.StatusBadRequest)
			return
		}
	}

	workDir, err := os.MkdirTemp("", "docforge-job-")
	if err != nil {
		jsonError(w, "failed to create work dir", http.StatusInternalServerError)
		return
	}

	specName := sanitizeFilename(specHeader.Filename)
	specPath := filepath.Join(workDir, specName)
	if err := os.WriteFile(specPath, specData, 0o644); err != nil {
		os.RemoveAll(workDir)
		jsonError(w, "failed to store spec", http.StatusInternalServerError)
		return
	}

	for _, fh := range r.MultipartForm.File["files"] {
		name := sanitizeFilename(fh.Filename)
		f, err := fh.Open()
		if err != nil {
			os.RemoveAll(workDir)
			jsonError(w, fmt.Sprintf("failed to open %s", name), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			os.RemoveAll(workDir)
			jsonError(w, fmt.Sprintf("%s too large or unreadable", name), http.StatusRequestEntityTooLarge)
			return
		}
		if err := os.WriteFile(filepath.Join(workDir, name), data, 0o644); err != nil {
			os.RemoveAll(workDir)
			jsonError(w, fmt.Sprintf("failed to store %s", name), http.StatusInternalServerError)
			return
		}
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(specData),
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		SpecName:  specName,
		Backend:   backendName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetSpecPath(specPath)
	job.SetWorkDir(workDir)

	if err := s.orchestrator.Submit(job); err != nil {
		os.RemoveAll(workDir)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/reports/%s/status", job.ID),
	})
}

func (s *Server) handleReportStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"backend":  snap.Backend,
		"progress": snap.Progress,
	})
}

func (s *Server) handleReportOutput(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		jsonError(w, fmt.Sprintf("job not completed (status %s)", snap.Status), http.StatusConflict)
		return
	}
	http.ServeFile(w, r, job.Output())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
