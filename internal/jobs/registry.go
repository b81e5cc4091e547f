package jobs

import (
	"errors"
	"sync"
	"time"
)

// State is the lifecycle state of a scraping job. Jobs move
// queued → running → {completed | failed | cancelled}; terminal states are
// sticky and never transition again.
type State string

const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// ErrJobNotFound is returned when a job id is unknown or already pruned
var ErrJobNotFound = errors.New("job not found")

// Status is the progress snapshot of one scraping job.
type Status struct {
	JobID          string     `json:"job_id"`
	Season         string     `json:"season"`
	State          State      `json:"state"`
	MatchesScraped int        `json:"matches_scraped"`
	TotalMatches   int        `json:"total_matches"`
	CurrentMatch   string     `json:"current_match,omitempty"`
	Errors         []string   `json:"errors,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Terminal reports whether the state accepts no further transitions
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// Registry tracks job statuses in memory. Every accessor returns a copy so
// callers can never observe a half-applied update.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*Status
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*Status)}
}

// Create registers a new queued job
func (r *Registry) Create(jobID, season string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := &Status{
		JobID:     jobID,
		Season:    season,
		State:     StateQueued,
		CreatedAt: time.Now().UTC(),
	}
	r.jobs[jobID] = st
	return snapshot(st)
}

// Query returns a consistent snapshot of one job's status
func (r *Registry) Query(jobID string) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[jobID]
	if !ok {
		return Status{}, ErrJobNotFound
	}
	return snapshot(st), nil
}

// MarkRunning moves a queued job to running
func (r *Registry) MarkRunning(jobID string) {
	r.mutate(jobID, func(st *Status) {
		st.State = StateRunning
		now := time.Now().UTC()
		st.StartedAt = &now
	})
}

// SetTotal records the number of fixtures the job will attempt
func (r *Registry) SetTotal(jobID string, total int) {
	r.mutate(jobID, func(st *Status) {
		st.TotalMatches = total
	})
}

// SetCurrentMatch records the match being scraped right now
func (r *Registry) SetCurrentMatch(jobID, label string) {
	r.mutate(jobID, func(st *Status) {
		st.CurrentMatch = label
	})
}

// RecordMatchScraped increments the success counter
func (r *Registry) RecordMatchScraped(jobID string) {
	r.mutate(jobID, func(st *Status) {
		st.MatchesScraped++
	})
}

// RecordError appends a per-match error without changing state
func (r *Registry) RecordError(jobID, msg string) {
	r.mutate(jobID, func(st *Status) {
		st.Errors = append(st.Errors, msg)
	})
}

// MarkCompleted finishes a job successfully, partial failures included
func (r *Registry) MarkCompleted(jobID string) {
	r.finish(jobID, StateCompleted, "")
}

// MarkFailed finishes a job unsuccessfully
func (r *Registry) MarkFailed(jobID, msg string) {
	r.finish(jobID, StateFailed, msg)
}

// MarkCancelled finishes a job at the caller's request. Cancelling an
// already-terminal job is a no-op.
func (r *Registry) MarkCancelled(jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	if st.State.Terminal() {
		return nil
	}
	st.State = StateCancelled
	now := time.Now().UTC()
	st.CompletedAt = &now
	st.CurrentMatch = ""
	return nil
}

// Prune drops terminal jobs whose completion is older than retention
func (r *Registry) Prune(retention time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().UTC().Add(-retention)
	removed := 0
	for id, st := range r.jobs {
		if st.State.Terminal() && st.CompletedAt != nil && st.CompletedAt.Before(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) finish(jobID string, state State, msg string) {
	r.mutate(jobID, func(st *Status) {
		st.State = state
		if msg != "" {
			st.Errors = append(st.Errors, msg)
		}
		now := time.Now().UTC()
		st.CompletedAt = &now
		st.CurrentMatch = ""
	})
}

// mutate applies fn under the lock. Terminal jobs are never mutated, which
// keeps completed and failed states sticky.
func (r *Registry) mutate(jobID string, fn func(*Status)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[jobID]
	if !ok || st.State.Terminal() {
		return
	}
	fn(st)
}

func snapshot(st *Status) Status {
	cpy := *st
	if st.Errors != nil {
		cpy.Errors = append([]string(nil), st.Errors...)
	}
	return cpy
}
