package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docforge/internal/backend"
	"github.com/dgallion1/docforge/internal/config"
	"github.com/dgallion1/docforge/internal/reportspec"
)

// Worker renders a single report job.
type Worker struct {
	log   *slog.Logger
	stats *RenderStats
	cfg   config.Config
}

func NewWorker(cfg config.Config, stats *RenderStats, log *slog.Logger) *Worker {
	return &Worker{
		log:   log,
		stats: stats,
		cfg:   cfg,
	}
}

// Process runs the full render pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "spec", job.SpecName)

	// The upload dir is only needed while building; output is persisted to
	// OutputDir, so drop the uploads whether the job succeeds or fails.
	if wd := job.WorkDir(); wd != "" {
		defer func() {
			if err := os.RemoveAll(wd); err != nil {
				log.Warn("work dir cleanup failed", "dir", wd, "error", err)
			}
		}()
	}

	// Phase 1: Build the report from its spec.
	job.SetStatus(StatusBuilding, "building")
	spec, err := reportspec.Load(job.SpecPath())
	if err != nil {
		log.Error("spec load failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "building")
		return
	}
	r, err := spec.Build()
	if err != nil {
		log.Error("build failed", "error", err)
		job.AddError(fmt.Sprintf("build: %s", err))
		job.SetStatus(StatusFailed, "building")
		return
	}

	// Phase 2: Assemble the document tree.
	job.SetStatus(StatusAssembling, "assembling")
	doc, err := r.Assemble()
	if err != nil {
		log.Error("assembly failed", "error", err)
		job.AddError(fmt.Sprintf("assemble: %s", err))
		job.SetStatus(StatusFailed, "assembling")
		return
	}
	job.SetSections(len(doc.Sections))
	log.Info("assembled document", "sections", len(doc.Sections), "packages", len(doc.Packages))

	// Phase 3: Render with retries on transient backend failures.
	job.SetStatus(StatusRendering, "rendering")
	b, ext, err := w.backendFor(job.Backend)
	if err != nil {
		log.Error("backend selection failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	var out bytes.Buffer
	var lastErr error
	start := time.Now()
	for attempt := range MaxRetries {
		out.Reset()
		lastErr = b.Render(ctx, doc, &out)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable render error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	w.stats.Record(time.Since(start).Milliseconds())
	if lastErr != nil {
		log.Error("render failed", "error", lastErr)
		job.AddError(fmt.Sprintf("render: %s", lastErr))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	// Phase 4: Persist the output.
	if err := os.MkdirAll(w.cfg.OutputDir, 0o755); err != nil {
		log.Error("output dir", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	outPath := filepath.Join(w.cfg.OutputDir, job.ID+ext)
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		log.Error("output write failed", "path", outPath, "error", err)
		job.AddError(fmt.Sprintf("write output: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	job.SetOutput(outPath, int64(out.Len()))
	job.SetStatus(StatusCompleted, "done")
	log.Info("render complete", "output", outPath, "bytes", out.Len())
}

// backendFor selects a backend by name, falling back to the configured
// default for an empty name.
func (w *Worker) backendFor(name string) (backend.Backend, string, error) {
	if name == "" {
		name = w.cfg.DefaultBackend
	}
	switch name {
	case "markup":
		return backend.Markup{}, ".txt", nil
	case "html":
		return backend.NewHTML(), ".html", nil
	case "command":
		if w.cfg.RenderCommand == "" {
			return nil, "", fmt.Errorf("command backend requested but no render command configured")
		}
		return &backend.Command{Path: w.cfg.RenderCommand, Args: w.cfg.RenderArgs}, ".out", nil
	default:
		return nil, "", fmt.Errorf("unknown backend %q", name)
	}
}
