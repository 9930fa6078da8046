package pipeline

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a render job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusBuilding   JobStatus = "building"
	StatusAssembling JobStatus = "assembling"
	StatusRendering  JobStatus = "rendering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single report render.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	SpecName string    `json:"spec_name"`
	Backend  string    `json:"backend"`

	Progress Progress `json:"progress"`

	OutputPath string    `json:"output_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Internal: not serialized.
	specPath string
	workDir  string
	errors   []string
}

// Progress tracks render progress.
type Progress struct {
	Sections     int      `json:"sections"`
	BytesWritten int64    `json:"bytes_written"`
	Errors       []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetSections records how many sections the assembled document carries.
func (j *Job) SetSections(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Sections = n
	j.UpdatedAt = time.Now()
}

// SetOutput records where the rendered output landed and its size.
func (j *Job) SetOutput(path string, bytes int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.OutputPath = path
	j.Progress.BytesWritten = bytes
	j.UpdatedAt = time.Now()
}

// SetSpecPath sets the on-disk location of the uploaded spec file.
func (j *Job) SetSpecPath(path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.specPath = path
}

// SpecPath returns the on-disk location of the uploaded spec file.
func (j *Job) SpecPath() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.specPath
}

// SetWorkDir marks a temporary upload directory the job owns. The worker
// removes it once the render finishes, whatever the outcome.
func (j *Job) SetWorkDir(dir string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.workDir = dir
}

// WorkDir returns the job-owned upload directory, empty if none.
func (j *Job) WorkDir() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.workDir
}

// Output returns the rendered output path, empty until the job completes.
func (j *Job) Output() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.OutputPath
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	SpecName string    `json:"spec_name"`
	Backend  string    `json:"backend"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		SpecName: j.SpecName,
		Backend:  j.Backend,
		Progress: Progress{
			Sections:     j.Progress.Sections,
			BytesWritten: j.Progress.BytesWritten,
			Errors:       errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// NewJobID derives a job identifier from the spec content and submission
// time, so resubmitting the same spec yields a distinct job.
func NewJobID(specData []byte) string {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixNano()))
	h := sha256.New()
	h.Write(specData)
	h.Write(ts[:])
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
