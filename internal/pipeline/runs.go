package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/doccheck/internal/compare"
)

// RunStatus represents the state of a comparison run.
type RunStatus string

const (
	StatusQueued     RunStatus = "queued"
	StatusExtracting RunStatus = "extracting"
	StatusComparing  RunStatus = "comparing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Run tracks the state of a single comparison of a filled document against
// a template. Each run owns its own verdict list; verdicts are never merged
// across runs.
type Run struct {
	mu sync.Mutex

	ID           string `json:"run_id"`
	TemplateName string `json:"template"`
	Filename     string `json:"filename"`

	Status RunStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	verdicts []compare.Verdict
	errors   []string
}

// Progress tracks per-section completion.
type Progress struct {
	TotalSections    int      `json:"total_sections"`
	SectionsCompared int      `json:"sections_compared"`
	Errors           []string `json:"errors"`
}

// RunStore is a thread-safe in-memory run registry with TTL eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

// Cleanup removes expired runs.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		if now.Sub(run.UpdatedAt) > s.ttl {
			delete(s.runs, id)
		}
	}
}

// SetStatus updates run status atomically.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// AddError records an error.
func (r *Run) AddError(err string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
	r.Progress.Errors = r.errors
	r.UpdatedAt = time.Now()
}

// SetTotalSections records the section count before comparison starts.
func (r *Run) SetTotalSections(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.TotalSections = n
	r.UpdatedAt = time.Now()
}

// IncrSectionsCompared atomically increments the completed-section count.
func (r *Run) IncrSectionsCompared() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.SectionsCompared++
	r.UpdatedAt = time.Now()
}

// SetFileData sets the raw filled-document bytes for processing.
func (r *Run) SetFileData(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileData = data
}

// FileData returns the raw filled-document bytes.
func (r *Run) FileData() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fileData
}

// SetVerdicts stores the completed verdict list and drops the file bytes.
func (r *Run) SetVerdicts(v []compare.Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts = v
	r.fileData = nil
	r.UpdatedAt = time.Now()
}

// Verdicts returns the run's verdict list (nil until completion).
func (r *Run) Verdicts() []compare.Verdict {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verdicts
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID           string    `json:"run_id"`
	TemplateName string    `json:"template"`
	Filename     string    `json:"filename"`
	Status       RunStatus `json:"status"`
	Phase        string    `json:"phase"`
	Progress     Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := r.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return RunSnapshot{
		ID:           r.ID,
		TemplateName: r.TemplateName,
		Filename:     r.Filename,
		Status:       r.Status,
		Phase:        r.Phase,
		Progress: Progress{
			TotalSections:    r.Progress.TotalSections,
			SectionsCompared: r.Progress.SectionsCompared,
			Errors:           errs,
		},
	}
}
